package querybuilder_test

import (
	"strings"
	"testing"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/querybuilder"
	"catalog/catalog_admin_data_service/pkg/whitelist"

	"github.com/stretchr/testify/assert"
)

func testRegistry(t *testing.T) *whitelist.Registry {
	t.Helper()

	registry := whitelist.DefaultRegistry()
	assert.NoError(t, registry.Validate())

	return registry
}

func intPtr(v int) *int { return &v }

func TestCompileRoundTrip(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"w.name"},
		Where: &models.WhereCondition{
			Key:      "w.wholesaler_id",
			Operator: "EQUALS",
			Value:    7,
		},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.NoError(t, err)

	assert.Equal(t,
		`SELECT w.name AS "name" FROM "wholesaler" w WHERE w.wholesaler_id = $1`,
		compiled.SQL)
	assert.Equal(t, []any{7}, compiled.Args)
	assert.Equal(t, 1, compiled.Metadata.ParameterCount)
	assert.False(t, compiled.Metadata.HasJoins)
	assert.True(t, compiled.Metadata.HasWhere)

	// The literal value must never leak into SQL text.
	assert.NotContains(t, compiled.SQL, "7")
}

func TestCompileUnknownColumnProducesNoSQL(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"w.name", "w.password"},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.Nil(t, compiled)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "w.password")
}

func TestCompileUnknownView(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		From:   "pg_shadow",
		Select: []string{"name"},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.Nil(t, compiled)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "pg_shadow")
}

func TestCompileInjectionAttemptRejected(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name; DROP TABLE wholesaler--"},
	}

	_, err := querybuilder.Compile(payload, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCompileSelectAlias(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name AS supplier_name", "region"},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.NoError(t, err)

	assert.Contains(t, compiled.SQL, `w.name AS "supplier_name"`)
	assert.Contains(t, compiled.SQL, `w.region AS "region"`)
	assert.Equal(t, map[string]string{"supplier_name": "w.name"}, compiled.Metadata.ResultAliases)
}

func TestCompileSelectAliasCannotLookQualified(t *testing.T) {
	registry := testRegistry(t)

	// A dotted alias would let the output column masquerade as a joined
	// column downstream.
	payload := models.QueryPayload{
		Select: []string{"name AS w.status"},
	}

	_, err := querybuilder.Compile(payload, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "w.status")
}

func TestCompileWhereTree(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name"},
		Where: &models.WhereCondition{
			LogicalOperator: "AND",
			Conditions: []*models.WhereCondition{
				{Key: "region", Operator: "EQUALS", Value: "north"},
				{
					LogicalOperator: "OR",
					Conditions: []*models.WhereCondition{
						{Key: "status", Operator: "EQUALS", Value: "active"},
						{Key: "status", Operator: "EQUALS", Value: "trial"},
					},
				},
			},
		},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.NoError(t, err)

	assert.Contains(t, compiled.SQL, "(w.region = $1 AND (w.status = $2 OR w.status = $3))")
	assert.Equal(t, []any{"north", "active", "trial"}, compiled.Args)
}

func TestCompileInExpansion(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name"},
		Where: &models.WhereCondition{
			Key:      "status",
			Operator: "IN",
			Value:    []string{"active", "blocked", "trial"},
		},
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.NoError(t, err)

	assert.Contains(t, compiled.SQL, "w.status IN ($1,$2,$3)")
	assert.Len(t, compiled.Args, 3)
}

func TestCompileEmptyInRejected(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name"},
		Where:  &models.WhereCondition{Key: "status", Operator: "IN", Value: []string{}},
	}

	_, err := querybuilder.Compile(payload, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCompileIsNullTakesNoParameter(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		From:   "product_definitions",
		Select: []string{"title"},
		Where:  &models.WhereCondition{Key: "description", Operator: "IS_NULL"},
	}

	compiled, err := querybuilder.Compile(payload, registry, "")
	assert.NoError(t, err)

	assert.Contains(t, compiled.SQL, "pd.description IS NULL")
	assert.Empty(t, compiled.Args)
	assert.Equal(t, 0, compiled.Metadata.ParameterCount)
}

func TestCompileEmptyGroupRejected(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name"},
		Where:  &models.WhereCondition{LogicalOperator: "AND", Conditions: []*models.WhereCondition{}},
	}

	_, err := querybuilder.Compile(payload, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCompileJoinsComeFromViewConfig(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"offering_id", "w.name", "pd.title"},
		Where: &models.WhereCondition{
			Key:      "wio.price",
			Operator: "GREATER_THAN",
			Value:    10.5,
		},
	}

	compiled, err := querybuilder.Compile(payload, registry, "offerings")
	assert.NoError(t, err)

	assert.Contains(t, compiled.SQL, `INNER JOIN "wholesaler" w ON wio.wholesaler_id = w.wholesaler_id`)
	assert.Contains(t, compiled.SQL, `LEFT JOIN "product_definition" pd ON wio.product_def_id = pd.product_def_id`)
	assert.Contains(t, compiled.SQL, `w.name AS "w.name"`)
	assert.Contains(t, compiled.SQL, `wio.offering_id AS "offering_id"`)
	assert.True(t, compiled.Metadata.HasJoins)
	assert.Equal(t, []any{10.5}, compiled.Args)
}

func TestCompileOrderByStable(t *testing.T) {
	registry := testRegistry(t)

	payload := models.QueryPayload{
		Select: []string{"name"},
		OrderBy: []models.OrderBy{
			{Column: "region", Direction: "DESC"},
			{Column: "name", Direction: "ASC"},
		},
		Limit:  intPtr(5),
		Offset: intPtr(10),
	}

	compiled, err := querybuilder.Compile(payload, registry, "wholesalers")
	assert.NoError(t, err)

	orderIdx := strings.Index(compiled.SQL, "ORDER BY w.region DESC, w.name ASC")
	assert.True(t, orderIdx > 0, compiled.SQL)
	assert.Contains(t, compiled.SQL, "LIMIT 5")
	assert.Contains(t, compiled.SQL, "OFFSET 10")
}

func TestCompileInvalidLimitAndOffset(t *testing.T) {
	registry := testRegistry(t)

	_, err := querybuilder.Compile(models.QueryPayload{
		Select: []string{"name"},
		Limit:  intPtr(0),
	}, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = querybuilder.Compile(models.QueryPayload{
		Select: []string{"name"},
		Offset: intPtr(-1),
	}, registry, "wholesalers")
	assert.ErrorAs(t, err, &validationErr)
}

func TestCompileOrderByColumnWhitelisted(t *testing.T) {
	registry := testRegistry(t)

	_, err := querybuilder.Compile(models.QueryPayload{
		Select:  []string{"name"},
		OrderBy: []models.OrderBy{{Column: "secret", Direction: "ASC"}},
	}, registry, "wholesalers")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
