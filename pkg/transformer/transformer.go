// Package transformer reconstructs nested domain objects from flat,
// alias-qualified recordsets. It fails loudly on any column the target
// shape does not declare, so whitelist/shape drift surfaces as an error
// instead of silently dropped data.
package transformer

import (
	"strings"

	"catalog/catalog_admin_data_service/models"
)

// Separator splits alias-qualified column names into (alias, field).
const Separator = "."

// AliasEntry describes the table behind a query alias.
type AliasEntry struct {
	Schema      string
	SourceTable string
	Fields      map[string]bool
}

// AliasRegistry maps query aliases to their source schema. Read-only after
// init.
type AliasRegistry map[string]AliasEntry

// Shape declares what a transformed result looks like: direct fields at
// the top level plus named relations pointing at nested schemas.
type Shape struct {
	Fields    map[string]bool
	Relations map[string]string // sub-field name -> schema name
}

// Transform reshapes rows into nested objects. Nested sub-objects that
// received zero non-null fields are omitted entirely, never emitted empty.
// Columns listed in renames were renamed at the client's request during
// compilation; they pass through at the top level under the chosen name.
func Transform(rows []map[string]any, shape Shape, aliases AliasRegistry, renames map[string]string) ([]map[string]any, error) {
	results := make([]map[string]any, 0, len(rows))

	for rowIndex, row := range rows {
		result := make(map[string]any)

		for column, value := range row {
			if _, renamed := renames[column]; renamed {
				result[column] = value
				continue
			}

			alias, field, hasSeparator := strings.Cut(column, Separator)

			if !hasSeparator {
				if !shape.Fields[column] {
					return nil, &models.UnexpectedColumnError{Column: column, RowIndex: rowIndex}
				}
				result[column] = value
				continue
			}

			entry, ok := aliases[alias]
			if !ok {
				return nil, &models.UnexpectedColumnError{Column: column, RowIndex: rowIndex}
			}

			subField, ok := relationForSchema(shape, entry.Schema)
			if !ok || !entry.Fields[field] {
				return nil, &models.UnexpectedColumnError{Column: column, RowIndex: rowIndex}
			}

			// Outer-join misses arrive as NULLs; they must not
			// materialize an empty nested object.
			if value == nil {
				continue
			}

			nested, ok := result[subField].(map[string]any)
			if !ok {
				nested = make(map[string]any)
				result[subField] = nested
			}
			nested[field] = value
		}

		results = append(results, result)
	}

	return results, nil
}

func relationForSchema(shape Shape, schema string) (string, bool) {
	for subField, relSchema := range shape.Relations {
		if relSchema == schema {
			return subField, true
		}
	}
	return "", false
}
