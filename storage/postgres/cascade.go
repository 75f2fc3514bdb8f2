package postgres

import (
	"context"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"

	"github.com/pkg/errors"
)

type cascadeStep struct {
	table string
	sql   string // single $1 bind: the entity id
}

// cascadePlans orders child deletes strictly leaf-first so a failing step
// never leaves an orphan; the whole plan runs on one transaction.
var cascadePlans = map[string][]cascadeStep{
	config.EntityWholesaler: {
		{
			table: "wholesaler_offering_attribute",
			sql: `DELETE FROM "wholesaler_offering_attribute"
				WHERE offering_id IN (SELECT offering_id FROM "wholesaler_item_offering" WHERE wholesaler_id = $1)`,
		},
		{
			table: "wholesaler_offering_link",
			sql: `DELETE FROM "wholesaler_offering_link"
				WHERE offering_id IN (SELECT offering_id FROM "wholesaler_item_offering" WHERE wholesaler_id = $1)`,
		},
		{
			table: "wholesaler_item_offering",
			sql:   `DELETE FROM "wholesaler_item_offering" WHERE wholesaler_id = $1`,
		},
		{
			table: "wholesaler_category",
			sql:   `DELETE FROM "wholesaler_category" WHERE wholesaler_id = $1`,
		},
	},
	config.EntityCategory: {
		{
			table: "wholesaler_category",
			sql:   `DELETE FROM "wholesaler_category" WHERE category_id = $1`,
		},
	},
	config.EntityProductDefinition: {
		{
			table: "product_definition_image",
			sql:   `DELETE FROM "product_definition_image" WHERE product_def_id = $1`,
		},
	},
	config.EntityOffering: {
		{
			table: "wholesaler_offering_attribute",
			sql:   `DELETE FROM "wholesaler_offering_attribute" WHERE offering_id = $1`,
		},
		{
			table: "wholesaler_offering_link",
			sql:   `DELETE FROM "wholesaler_offering_link" WHERE offering_id = $1`,
		},
	},
	config.EntityOrder: {
		{
			table: "order_item",
			sql:   `DELETE FROM "order_item" WHERE order_id = $1`,
		},
	},
}

// targetDeletes snapshot the removed row's identifying fields via RETURNING.
var targetDeletes = map[string]string{
	config.EntityWholesaler:        `DELETE FROM "wholesaler" WHERE wholesaler_id = $1 RETURNING wholesaler_id, name, region, status`,
	config.EntityCategory:          `DELETE FROM "product_category" WHERE category_id = $1 RETURNING category_id, name`,
	config.EntityProductDefinition: `DELETE FROM "product_definition" WHERE product_def_id = $1 RETURNING product_def_id, category_id, title`,
	config.EntityOffering:          `DELETE FROM "wholesaler_item_offering" WHERE offering_id = $1 RETURNING offering_id, wholesaler_id, product_def_id`,
	config.EntityOrder:             `DELETE FROM "orders" WHERE order_id = $1 RETURNING order_id, wholesaler_id, status`,
}

// DeleteEntity runs the delete state machine on one transaction:
// classify, gate on the cascade flags, cascade leaf-first, delete the
// target. Hard dependents block no matter which flags are set.
func DeleteEntity(ctx context.Context, tx Querier, entityType, id string, req models.DeleteRequest) (*models.DeleteResult, error) {
	report, err := CheckDependencies(ctx, tx, entityType, id)
	if err != nil {
		return nil, err
	}

	if len(report.Hard) > 0 {
		return nil, &models.DependencyConflictError{Report: report}
	}
	if len(report.Soft) > 0 && !req.CascadeAllowed() {
		return nil, &models.DependencyConflictError{Report: report}
	}

	result := &models.DeleteResult{
		Deleted: map[string]any{},
		Stats:   map[string]int64{},
	}

	if entityType == config.EntityProductDefinition {
		keys, err := collectImageObjectKeys(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		result.RemovedObjectKeys = keys
	}

	if len(report.Soft) > 0 {
		for _, step := range cascadePlans[entityType] {
			tag, err := tx.Exec(ctx, step.sql, id)
			if err != nil {
				return nil, errors.Wrapf(err, "cascade delete from %s failed", step.table)
			}
			if tag.RowsAffected() > 0 {
				result.Stats[step.table] += tag.RowsAffected()
			}
		}
	}

	deleteSQL, ok := targetDeletes[entityType]
	if !ok {
		return nil, errors.Errorf("no delete statement for entity type %q", entityType)
	}

	rows, err := tx.Query(ctx, deleteSQL, id)
	if err != nil {
		return nil, errors.Wrap(err, "target delete failed")
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "read deleted row snapshot")
		}
		for i, fd := range rows.FieldDescriptions() {
			result.Deleted[string(fd.Name)] = normalizeValue(values[i])
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "target delete rows")
	}

	// Zero affected rows is a missing target, not an exception.
	if !found {
		return nil, &models.NotFoundError{Entity: entityType, ID: id}
	}

	return result, nil
}

func collectImageObjectKeys(ctx context.Context, tx Querier, productDefID string) ([]string, error) {
	rows, err := tx.Query(ctx,
		`SELECT object_key FROM "product_definition_image" WHERE product_def_id = $1`, productDefID)
	if err != nil {
		return nil, errors.Wrap(err, "collect image object keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "scan image object key")
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
