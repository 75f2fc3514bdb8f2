// Package whitelist holds the static registry of tables, columns, and join
// graphs that dynamic queries are allowed to touch. The registry is the only
// path by which an identifier may enter generated SQL.
package whitelist

import (
	"sort"
	"strings"

	"catalog/catalog_admin_data_service/models"

	"github.com/pkg/errors"
)

type tableConfig struct {
	name    string
	alias   string
	columns []string
}

// Registry is immutable after Validate; safe for concurrent reads.
type Registry struct {
	tables map[string]tableConfig
	views  map[string]models.ViewConfig

	// allowed holds the precomputed alias-qualified column set per
	// table/view name.
	allowed map[string]map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		tables:  make(map[string]tableConfig),
		views:   make(map[string]models.ViewConfig),
		allowed: make(map[string]map[string]bool),
	}
}

// AddTable registers a base table under a logical name with its canonical
// alias and column list.
func (r *Registry) AddTable(name, alias string, columns ...string) *Registry {
	r.tables[name] = tableConfig{name: name, alias: alias, columns: columns}

	set := make(map[string]bool, len(columns)*2)
	for _, c := range columns {
		set[c] = true
		set[alias+"."+c] = true
	}
	r.allowed[name] = set

	return r
}

// AddView registers a named view configuration. The view's allowed columns
// are computed during Validate.
func (r *Registry) AddView(view models.ViewConfig) *Registry {
	r.views[view.Name] = view
	return r
}

// HasTarget reports whether name resolves to a registered table or view.
func (r *Registry) HasTarget(name string) bool {
	if _, ok := r.tables[name]; ok {
		return true
	}
	_, ok := r.views[name]
	return ok
}

// Targets lists every registered table and view name.
func (r *Registry) Targets() []string {
	names := make([]string, 0, len(r.tables)+len(r.views))
	for name := range r.tables {
		names = append(names, name)
	}
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a logical name to its compilation target: base tables become
// single-table views with no joins.
func (r *Registry) Resolve(name string) (models.ViewConfig, bool) {
	if view, ok := r.views[name]; ok {
		return view, true
	}
	if tbl, ok := r.tables[name]; ok {
		return models.ViewConfig{
			Name:      name,
			BaseTable: tbl.name,
			BaseAlias: tbl.alias,
		}, true
	}
	return models.ViewConfig{}, false
}

// AllowedColumns returns the qualified-column set for a table or view.
func (r *Registry) AllowedColumns(name string) (map[string]bool, bool) {
	set, ok := r.allowed[name]
	return set, ok
}

// IsAllowed reports whether a column reference (bare or alias-qualified) is
// permitted for the named table or view.
func (r *Registry) IsAllowed(name, column string) bool {
	set, ok := r.allowed[name]
	if !ok {
		return false
	}
	return set[column]
}

// BaseAlias returns the default alias for unqualified column references
// against the named target.
func (r *Registry) BaseAlias(name string) string {
	if view, ok := r.views[name]; ok {
		return view.BaseAlias
	}
	if tbl, ok := r.tables[name]; ok {
		return tbl.alias
	}
	return ""
}

// Validate checks registry consistency. It must pass before the process
// serves requests: every view must reference registered base tables, and
// every join's on-columns must belong to the joined tables.
func (r *Registry) Validate() error {
	for name, view := range r.views {
		base, ok := r.tables[view.BaseTable]
		if !ok {
			return errors.Errorf("view %q references unregistered base table %q", name, view.BaseTable)
		}
		if view.BaseAlias != base.alias {
			return errors.Errorf("view %q alias %q does not match table %q alias %q",
				name, view.BaseAlias, view.BaseTable, base.alias)
		}

		participants := map[string]tableConfig{base.alias: base}

		for _, join := range view.Joins {
			if join.Type != "INNER" && join.Type != "LEFT" {
				return errors.Errorf("view %q join %q has unsupported type %q", name, join.Table, join.Type)
			}

			joined, ok := r.findTableByName(join.Table)
			if !ok {
				return errors.Errorf("view %q joins unregistered table %q", name, join.Table)
			}
			participants[join.Alias] = tableConfig{name: joined.name, alias: join.Alias, columns: joined.columns}

			if len(join.On) == 0 {
				return errors.Errorf("view %q join %q has no on-condition", name, join.Table)
			}
			for _, on := range join.On {
				if on.IsGroup() {
					return errors.Errorf("view %q join %q on-condition must be column-to-column leaves", name, join.Table)
				}
				right, ok := on.Value.(string)
				if !ok {
					return errors.Errorf("view %q join %q on-condition value must be a column reference", name, join.Table)
				}
				for _, ref := range []string{on.Key, right} {
					if !columnBelongs(participants, ref) {
						return errors.Errorf("view %q join %q on-column %q not whitelisted in joined tables", name, join.Table, ref)
					}
				}
			}
		}

		// Precompute the view's allowed set from all participants.
		set := make(map[string]bool)
		for alias, tbl := range participants {
			for _, c := range tbl.columns {
				set[alias+"."+c] = true
				if alias == view.BaseAlias {
					set[c] = true
				}
			}
		}
		r.allowed[name] = set
	}

	return nil
}

func (r *Registry) findTableByName(tableName string) (tableConfig, bool) {
	for _, tbl := range r.tables {
		if tbl.name == tableName {
			return tbl, true
		}
	}
	return tableConfig{}, false
}

func columnBelongs(participants map[string]tableConfig, ref string) bool {
	alias, column, ok := strings.Cut(ref, ".")
	if !ok {
		return false
	}
	tbl, ok := participants[alias]
	if !ok {
		return false
	}
	for _, c := range tbl.columns {
		if c == column {
			return true
		}
	}
	return false
}
