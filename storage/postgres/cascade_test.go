package postgres

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.vals[i].(int64)
		case *string:
			*p = r.vals[i].(string)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

type fakeRows struct {
	fields []pgconn.FieldDescription
	rows   [][]any
	idx    int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	return fakeRow{vals: r.rows[r.idx-1]}.Scan(dest...)
}

// fakeTx scripts dependency counts, cascade results, and the target delete
// outcome by table name.
type fakeTx struct {
	counts     map[string]int64 // child table -> dependency count
	execRows   map[string]int64 // child table -> rows a cascade delete removes
	imageKeys  []string
	targetRows *fakeRows // nil means the target row is absent

	execs []string // executed cascade statements in order
}

// deletesFrom matches the deleted table itself, not tables a subselect in
// the statement happens to reference.
func deletesFrom(sql, table string) bool {
	return strings.HasPrefix(sql, `DELETE FROM "`+table+`"`)
}

// countsFrom anchors on the counted table so a join against another table in
// the same statement does not pick up that table's scripted count.
func countsFrom(sql, table string) bool {
	return strings.HasPrefix(sql, "SELECT COUNT(*)") && strings.Contains(sql, `FROM "`+table+`"`)
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	for table, count := range f.counts {
		if countsFrom(sql, table) {
			return fakeRow{vals: []any{count}}
		}
	}
	return fakeRow{vals: []any{int64(0)}}
}

func (f *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	if strings.Contains(sql, "SELECT object_key") {
		rows := make([][]any, 0, len(f.imageKeys))
		for _, key := range f.imageKeys {
			rows = append(rows, []any{key})
		}
		return &fakeRows{rows: rows}, nil
	}

	if f.targetRows == nil {
		return &fakeRows{}, nil
	}
	return f.targetRows, nil
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	for table, affected := range f.execRows {
		if deletesFrom(sql, table) {
			return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", affected)), nil
		}
	}
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func targetRowsFor(fields []string, values []any) *fakeRows {
	fds := make([]pgconn.FieldDescription, len(fields))
	for i, name := range fields {
		fds[i] = pgconn.FieldDescription{Name: name}
	}
	return &fakeRows{fields: fds, rows: [][]any{values}}
}

func TestCheckDependenciesEmpty(t *testing.T) {
	tx := &fakeTx{}

	report, err := CheckDependencies(context.Background(), tx, config.EntityWholesaler, "w-1")
	assert.NoError(t, err)
	assert.Empty(t, report.Hard)
	assert.Empty(t, report.Soft)
	assert.True(t, report.Empty())
}

func TestCheckDependenciesClassifiesPerPolicy(t *testing.T) {
	tx := &fakeTx{counts: map[string]int64{
		"wholesaler_category":      3,
		"wholesaler_item_offering": 2,
	}}

	report, err := CheckDependencies(context.Background(), tx, config.EntityCategory, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"3 wholesaler assignment(s)"}, report.Soft)
	assert.Equal(t, []string{"2 offering(s)"}, report.Hard)
}

func TestCheckDependenciesUnknownEntityType(t *testing.T) {
	_, err := CheckDependencies(context.Background(), &fakeTx{}, "navigation_node", "x")
	assert.Error(t, err)
}

func TestDeleteSoftConflictWithoutCascade(t *testing.T) {
	tx := &fakeTx{counts: map[string]int64{"wholesaler_category": 3}}

	result, err := DeleteEntity(context.Background(), tx, config.EntityWholesaler, "w-1", models.DeleteRequest{})
	assert.Nil(t, result)

	var conflict *models.DependencyConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.CascadeAvailable())
	assert.Equal(t, []string{"3 category assignment(s)"}, conflict.Report.Soft)

	// Nothing may be deleted on the conflict path.
	assert.Empty(t, tx.execs)
}

func TestDeleteHardDependentsBlockRegardlessOfFlags(t *testing.T) {
	flagCombos := []models.DeleteRequest{
		{},
		{Cascade: true},
		{ForceCascade: true},
		{Cascade: true, ForceCascade: true},
	}

	for _, req := range flagCombos {
		tx := &fakeTx{counts: map[string]int64{"wholesaler_item_offering": 2}}

		result, err := DeleteEntity(context.Background(), tx, config.EntityCategory, "c-1", req)
		assert.Nil(t, result)

		var conflict *models.DependencyConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.False(t, conflict.CascadeAvailable())
		assert.Empty(t, tx.execs)
	}
}

func TestDeleteWholesalerBlockedByForeignOrderItems(t *testing.T) {
	// No orders of its own, but another wholesaler's order items reference
	// its offerings. That blocks deletion regardless of the cascade flags.
	tx := &fakeTx{counts: map[string]int64{
		"wholesaler_item_offering": 2,
		"order_item":               5,
	}}

	result, err := DeleteEntity(context.Background(), tx, config.EntityWholesaler, "w-1",
		models.DeleteRequest{Cascade: true, ForceCascade: true})
	assert.Nil(t, result)

	var conflict *models.DependencyConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.False(t, conflict.CascadeAvailable())
	assert.Contains(t, conflict.Report.Hard, "5 order item(s) referencing its offerings")
	assert.Empty(t, tx.execs)
}

func TestDeleteCascadeRunsLeafFirst(t *testing.T) {
	tx := &fakeTx{
		counts: map[string]int64{
			"wholesaler_category":      1,
			"wholesaler_item_offering": 2,
		},
		execRows: map[string]int64{
			"wholesaler_offering_attribute": 4,
			"wholesaler_item_offering":      2,
			"wholesaler_category":           1,
		},
		targetRows: targetRowsFor(
			[]string{"wholesaler_id", "name", "region", "status"},
			[]any{"w-1", "Northern Goods", "north", "active"},
		),
	}

	result, err := DeleteEntity(context.Background(), tx, config.EntityWholesaler, "w-1", models.DeleteRequest{Cascade: true})
	assert.NoError(t, err)

	assert.Len(t, tx.execs, 4)
	assert.True(t, deletesFrom(tx.execs[0], "wholesaler_offering_attribute"))
	assert.True(t, deletesFrom(tx.execs[1], "wholesaler_offering_link"))
	assert.True(t, deletesFrom(tx.execs[2], "wholesaler_item_offering"))
	assert.True(t, deletesFrom(tx.execs[3], "wholesaler_category"))

	assert.Equal(t, int64(4), result.Stats["wholesaler_offering_attribute"])
	assert.Equal(t, int64(2), result.Stats["wholesaler_item_offering"])
	assert.Equal(t, "Northern Goods", result.Deleted["name"])
}

func TestDeleteForceCascadeImpliesCascade(t *testing.T) {
	tx := &fakeTx{
		counts: map[string]int64{"order_item": 2},
		targetRows: targetRowsFor(
			[]string{"order_id", "wholesaler_id", "status"},
			[]any{"ord-1", "w-1", "open"},
		),
	}

	result, err := DeleteEntity(context.Background(), tx, config.EntityOrder, "ord-1", models.DeleteRequest{ForceCascade: true})
	assert.NoError(t, err)
	assert.Len(t, tx.execs, 1)
	assert.Equal(t, "ord-1", result.Deleted["order_id"])
}

func TestDeleteNoDependentsSkipsCascade(t *testing.T) {
	tx := &fakeTx{
		targetRows: targetRowsFor(
			[]string{"category_id", "name"},
			[]any{"c-1", "Dairy"},
		),
	}

	result, err := DeleteEntity(context.Background(), tx, config.EntityCategory, "c-1", models.DeleteRequest{})
	assert.NoError(t, err)
	assert.Empty(t, tx.execs)
	assert.Equal(t, "Dairy", result.Deleted["name"])
	assert.Empty(t, result.Stats)
}

func TestDeleteMissingTargetIsNotFound(t *testing.T) {
	tx := &fakeTx{}

	result, err := DeleteEntity(context.Background(), tx, config.EntityCategory, "gone", models.DeleteRequest{})
	assert.Nil(t, result)

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "gone", notFound.ID)
}

func TestDeleteProductDefinitionCollectsImageKeys(t *testing.T) {
	tx := &fakeTx{
		counts:    map[string]int64{"product_definition_image": 2},
		imageKeys: []string{"images/a.png", "images/b.png"},
		execRows:  map[string]int64{"product_definition_image": 2},
		targetRows: targetRowsFor(
			[]string{"product_def_id", "category_id", "title"},
			[]any{"pd-1", "c-1", "Bulk flour"},
		),
	}

	result, err := DeleteEntity(context.Background(), tx, config.EntityProductDefinition, "pd-1", models.DeleteRequest{Cascade: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"images/a.png", "images/b.png"}, result.RemovedObjectKeys)
	assert.Equal(t, int64(2), result.Stats["product_definition_image"])
}

func TestDependencyPolicyCoversEveryEntityType(t *testing.T) {
	for entityType := range config.ENTITY_TYPES {
		checks, ok := dependencyPolicy[entityType]
		assert.True(t, ok, entityType)
		assert.NotEmpty(t, checks, entityType)

		for _, check := range checks {
			assert.Contains(t, []string{depHard, depSoft}, check.kind)
			assert.Contains(t, check.countSQL, "$1")
		}

		_, ok = targetDeletes[entityType]
		assert.True(t, ok, entityType)
	}
}
