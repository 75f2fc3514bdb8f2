package postgres

import (
	"context"
	"fmt"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Querier is the subset of pgx.Tx the classifier and cascade runner need.
// Passing it explicitly keeps the whole check-cascade-delete flow on one
// transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	depHard = "hard"
	depSoft = "soft"
)

type dependencyCheck struct {
	kind     string
	describe string // fmt verb receives the row count
	countSQL string // single $1 bind: the entity id
}

// dependencyPolicy is the single place deletability rules live. Soft
// dependents may be removed by an opted-in cascade; hard dependents block
// deletion unconditionally.
var dependencyPolicy = map[string][]dependencyCheck{
	config.EntityWholesaler: {
		{
			kind:     depSoft,
			describe: "%d category assignment(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_category" WHERE wholesaler_id = $1`,
		},
		{
			kind:     depSoft,
			describe: "%d offering(s) with their attributes and links",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_item_offering" WHERE wholesaler_id = $1`,
		},
		{
			kind:     depHard,
			describe: "%d order(s)",
			countSQL: `SELECT COUNT(*) FROM "orders" WHERE wholesaler_id = $1`,
		},
		{
			// Order items reference offerings directly, so items placed on
			// another wholesaler's order still pin this wholesaler's rows.
			kind:     depHard,
			describe: "%d order item(s) referencing its offerings",
			countSQL: `SELECT COUNT(*) FROM "order_item" oi
				JOIN "wholesaler_item_offering" wio ON oi.offering_id = wio.offering_id
				WHERE wio.wholesaler_id = $1`,
		},
	},
	config.EntityCategory: {
		{
			kind:     depSoft,
			describe: "%d wholesaler assignment(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_category" WHERE category_id = $1`,
		},
		{
			kind:     depHard,
			describe: "%d offering(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_item_offering" WHERE category_id = $1`,
		},
		{
			kind:     depHard,
			describe: "%d product definition(s)",
			countSQL: `SELECT COUNT(*) FROM "product_definition" WHERE category_id = $1`,
		},
	},
	config.EntityProductDefinition: {
		{
			kind:     depSoft,
			describe: "%d image(s)",
			countSQL: `SELECT COUNT(*) FROM "product_definition_image" WHERE product_def_id = $1`,
		},
		{
			kind:     depHard,
			describe: "%d offering(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_item_offering" WHERE product_def_id = $1`,
		},
	},
	config.EntityOffering: {
		{
			kind:     depSoft,
			describe: "%d attribute(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_offering_attribute" WHERE offering_id = $1`,
		},
		{
			kind:     depSoft,
			describe: "%d link(s)",
			countSQL: `SELECT COUNT(*) FROM "wholesaler_offering_link" WHERE offering_id = $1`,
		},
		{
			kind:     depHard,
			describe: "%d order item(s)",
			countSQL: `SELECT COUNT(*) FROM "order_item" WHERE offering_id = $1`,
		},
	},
	config.EntityOrder: {
		{
			kind:     depSoft,
			describe: "%d order item(s)",
			countSQL: `SELECT COUNT(*) FROM "order_item" WHERE order_id = $1`,
		},
	},
}

// CheckDependencies runs the policy table's count lookups for one entity
// instance on the supplied transaction and classifies the dependents found.
func CheckDependencies(ctx context.Context, tx Querier, entityType, id string) (models.DependencyReport, error) {
	report := models.DependencyReport{
		Hard: []string{},
		Soft: []string{},
	}

	checks, ok := dependencyPolicy[entityType]
	if !ok {
		return report, errors.Errorf("no dependency policy for entity type %q", entityType)
	}

	for _, check := range checks {
		var count int64
		if err := tx.QueryRow(ctx, check.countSQL, id).Scan(&count); err != nil {
			return report, errors.Wrap(err, "dependency count failed")
		}
		if count == 0 {
			continue
		}

		description := fmt.Sprintf(check.describe, count)
		if check.kind == depHard {
			report.Hard = append(report.Hard, description)
		} else {
			report.Soft = append(report.Soft, description)
		}
	}

	return report, nil
}
