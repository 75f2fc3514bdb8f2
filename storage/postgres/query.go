package postgres

import (
	"context"

	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/logger"
	psqlpool "catalog/catalog_admin_data_service/pool"
	"catalog/catalog_admin_data_service/storage"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

type queryRepo struct {
	db  *psqlpool.Pool
	log logger.LoggerI
}

func NewQueryRepo(db *psqlpool.Pool, log logger.LoggerI) storage.QueryRepoI {
	return &queryRepo{
		db:  db,
		log: log,
	}
}

// Execute runs a compiled query and returns the raw recordset keyed by the
// result column names the compiler assigned.
func (q *queryRepo) Execute(ctx context.Context, compiled *models.CompiledQuery) ([]map[string]any, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "query.Execute")
	defer dbSpan.Finish()

	rows, err := q.db.Query(ctx, compiled.SQL, compiled.Args...)
	if err != nil {
		return nil, errors.Wrap(err, "query execution")
	}
	defer rows.Close()

	columns := make([]string, len(rows.FieldDescriptions()))
	for i, fd := range rows.FieldDescriptions() {
		columns[i] = string(fd.Name)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "get values")
		}

		rowData := make(map[string]any, len(columns))
		for i, col := range columns {
			rowData[col] = normalizeValue(values[i])
		}
		results = append(results, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return results, nil
}

func normalizeValue(v any) any {
	if b, ok := v.([16]uint8); ok { // uuid
		return uuid.UUID(b).String()
	}
	return v
}
