// Package querybuilder compiles declarative query payloads into
// parameterized SQL. Every identifier is checked against the whitelist
// registry before it reaches SQL text; client values only ever travel as
// positional parameters.
package querybuilder

import (
	"fmt"
	"strings"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
	"catalog/catalog_admin_data_service/pkg/whitelist"

	"github.com/Masterminds/squirrel"
	"github.com/spf13/cast"
)

var operatorTokens = map[string]string{
	config.OperatorEquals:             "=",
	config.OperatorNotEquals:          "<>",
	config.OperatorGreaterThan:        ">",
	config.OperatorGreaterThanOrEqual: ">=",
	config.OperatorLessThan:           "<",
	config.OperatorLessThanOrEqual:    "<=",
	config.OperatorLike:               "LIKE",
}

// Compile validates payload against the registry and renders SQL plus the
// ordered argument list. No SQL text is produced for invalid payloads.
func Compile(payload models.QueryPayload, registry *whitelist.Registry, defaultView string) (*models.CompiledQuery, error) {
	target := payload.From
	if target == "" {
		target = defaultView
	}

	view, ok := registry.Resolve(target)
	if !ok {
		return nil, models.NewValidationError("unknown table/view", target)
	}

	if len(payload.Select) == 0 {
		return nil, models.NewValidationError("select must not be empty", "")
	}

	baseAlias := registry.BaseAlias(target)

	selectColumns, selectExprs, renames, err := buildSelect(payload.Select, registry, target, baseAlias)
	if err != nil {
		return nil, err
	}

	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := sb.Select(selectExprs...).From(fmt.Sprintf("%q %s", view.BaseTable, view.BaseAlias))

	for _, join := range view.Joins {
		expr := fmt.Sprintf("%q %s ON %s", join.Table, join.Alias, renderJoinOn(join.On))
		switch join.Type {
		case config.JoinLeft:
			query = query.LeftJoin(expr)
		default:
			query = query.InnerJoin(expr)
		}
	}

	var argCount int
	if payload.Where != nil {
		whereSQL, whereArgs, err := renderCondition(payload.Where, registry, target, baseAlias)
		if err != nil {
			return nil, err
		}
		query = query.Where(squirrel.Expr(whereSQL, whereArgs...))
		argCount = len(whereArgs)
	}

	for _, order := range payload.OrderBy {
		qualified, err := qualifyColumn(order.Column, registry, target, baseAlias)
		if err != nil {
			return nil, err
		}
		direction := strings.ToUpper(order.Direction)
		if direction == "" {
			direction = "ASC"
		}
		if !config.ORDER_DIRECTIONS[direction] {
			return nil, models.NewValidationError("invalid order direction", order.Direction)
		}
		query = query.OrderBy(qualified + " " + direction)
	}

	if payload.Limit != nil {
		if *payload.Limit <= 0 {
			return nil, models.NewValidationError("limit must be a positive integer", cast.ToString(*payload.Limit))
		}
		query = query.Limit(uint64(*payload.Limit))
	}
	if payload.Offset != nil {
		if *payload.Offset < 0 {
			return nil, models.NewValidationError("offset must not be negative", cast.ToString(*payload.Offset))
		}
		query = query.Offset(uint64(*payload.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, models.NewValidationError("failed to render query", err.Error())
	}

	return &models.CompiledQuery{
		SQL:  sql,
		Args: args,
		Metadata: models.QueryMetadata{
			SelectColumns:  selectColumns,
			HasJoins:       len(view.Joins) > 0,
			HasWhere:       payload.Where != nil,
			ParameterCount: argCount,
			ResultAliases:  renames,
		},
	}, nil
}

// buildSelect resolves each select entry, honouring an optional " AS alias"
// suffix. Result columns keep alias-qualified names so the transformer can
// split them back into nested objects; client-chosen aliases are returned in
// renames so the transformer can recognize them too.
func buildSelect(entries []string, registry *whitelist.Registry, target, baseAlias string) (columns, exprs []string, renames map[string]string, err error) {
	for _, entry := range entries {
		ref := strings.TrimSpace(entry)
		outAlias := ""

		if idx := strings.Index(strings.ToUpper(ref), " AS "); idx >= 0 {
			outAlias = strings.TrimSpace(ref[idx+4:])
			ref = strings.TrimSpace(ref[:idx])
		}

		qualified, err := qualifyColumn(ref, registry, target, baseAlias)
		if err != nil {
			return nil, nil, nil, err
		}

		// Base-table columns surface under their bare field name; joined
		// columns keep the alias-qualified name the transformer splits on.
		if outAlias == "" {
			outAlias = qualified
			if alias, field, ok := strings.Cut(qualified, "."); ok && alias == baseAlias {
				outAlias = field
			}
		} else {
			if !identifierPattern(outAlias) {
				return nil, nil, nil, models.NewValidationError("invalid select alias", outAlias)
			}
			if renames == nil {
				renames = make(map[string]string)
			}
			renames[outAlias] = qualified
		}

		columns = append(columns, qualified)
		exprs = append(exprs, fmt.Sprintf("%s AS %q", qualified, outAlias))
	}
	return columns, exprs, renames, nil
}

// qualifyColumn whitelists a bare or alias-qualified column reference and
// returns its alias-qualified form.
func qualifyColumn(ref string, registry *whitelist.Registry, target, baseAlias string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", models.NewValidationError("empty column reference", "")
	}
	if !registry.IsAllowed(target, ref) {
		return "", models.NewValidationError("column not allowed for "+target, ref)
	}
	if strings.Contains(ref, ".") {
		return ref, nil
	}
	return baseAlias + "." + ref, nil
}

// renderCondition walks the where tree depth-first and renders it with "?"
// placeholders; squirrel rewrites them to $n on ToSql.
func renderCondition(cond *models.WhereCondition, registry *whitelist.Registry, target, baseAlias string) (string, []any, error) {
	if cond.IsGroup() {
		if len(cond.Conditions) == 0 {
			return "", nil, models.NewValidationError("empty condition group", "")
		}

		var connector string
		switch cond.LogicalOperator {
		case config.LogicalAnd:
			connector = " AND "
		case config.LogicalOr:
			connector = " OR "
		default:
			return "", nil, models.NewValidationError("invalid logical operator", cond.LogicalOperator)
		}

		var (
			parts []string
			args  []any
		)
		for _, child := range cond.Conditions {
			childSQL, childArgs, err := renderCondition(child, registry, target, baseAlias)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, childSQL)
			args = append(args, childArgs...)
		}
		return "(" + strings.Join(parts, connector) + ")", args, nil
	}

	qualified, err := qualifyColumn(cond.Key, registry, target, baseAlias)
	if err != nil {
		return "", nil, err
	}

	switch cond.Operator {
	case config.OperatorIsNull:
		return qualified + " IS NULL", nil, nil
	case config.OperatorIsNotNull:
		return qualified + " IS NOT NULL", nil, nil
	case config.OperatorIn:
		values := toAnySlice(cond.Value)
		if len(values) == 0 {
			return "", nil, models.NewValidationError("IN requires a non-empty array value", cond.Key)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
		return qualified + " IN (" + placeholders + ")", values, nil
	}

	token, ok := operatorTokens[cond.Operator]
	if !ok {
		return "", nil, models.NewValidationError("unsupported operator", cond.Operator)
	}

	return qualified + " " + token + " ?", []any{cond.Value}, nil
}

// renderJoinOn renders a view join's column-to-column conditions. Join
// configurations come from the startup-validated registry, never from
// client input.
func renderJoinOn(on []*models.WhereCondition) string {
	parts := make([]string, 0, len(on))
	for _, cond := range on {
		parts = append(parts, fmt.Sprintf("%s = %v", cond.Key, cond.Value))
	}
	return strings.Join(parts, " AND ")
}

func toAnySlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out
	default:
		if values, err := cast.ToSliceE(value); err == nil {
			return values
		}
		return nil
	}
}

// identifierPattern restricts client-chosen result aliases to plain
// identifiers; a dot would let an alias masquerade as a qualified column.
func identifierPattern(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}
