package models

// QueryPayload is the declarative read request accepted by the query
// endpoints. Every identifier in it is validated against the whitelist
// registry before any SQL is rendered.
type QueryPayload struct {
	From    string          `json:"from,omitempty"`
	Select  []string        `json:"select"`
	Where   *WhereCondition `json:"where,omitempty"`
	OrderBy []OrderBy       `json:"order_by,omitempty"`
	Limit   *int            `json:"limit,omitempty"`
	Offset  *int            `json:"offset,omitempty"`
}

// WhereCondition is a recursive tagged union. A node with a non-empty
// Conditions slice is a group combined with LogicalOperator; otherwise it
// is a leaf comparing Key against Value with Operator.
type WhereCondition struct {
	// Leaf
	Key      string `json:"key,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`

	// Group
	LogicalOperator string            `json:"logical_operator,omitempty"`
	Conditions      []*WhereCondition `json:"conditions,omitempty"`
}

// IsGroup reports whether the node is a logical group rather than a leaf.
func (w *WhereCondition) IsGroup() bool {
	return len(w.Conditions) > 0 || w.LogicalOperator != ""
}

type OrderBy struct {
	Column    string `json:"column"`
	Direction string `json:"direction"` // ASC, DESC
}

// JoinClause belongs to a named view configuration; it is never accepted
// from client input.
type JoinClause struct {
	Type  string `json:"type"` // INNER, LEFT
	Table string `json:"table"`
	Alias string `json:"alias"`
	// On is restricted to column-to-column leaves, e.g.
	// {Key: "wio.wholesaler_id", Operator: "EQUALS", Value: "w.wholesaler_id"}.
	On []*WhereCondition `json:"on"`
}

// ViewConfig is a named, fixed combination of a base table and an ordered
// list of joins, loaded once at process start.
type ViewConfig struct {
	Name      string
	BaseTable string
	BaseAlias string
	Joins     []JoinClause
}

// QueryMetadata describes a compiled query for logging and responses.
type QueryMetadata struct {
	SelectColumns  []string `json:"select_columns"`
	HasJoins       bool     `json:"has_joins"`
	HasWhere       bool     `json:"has_where"`
	ParameterCount int      `json:"parameter_count"`
	// ResultAliases maps client-chosen output names back to the qualified
	// column they rename, so the transformer can recognize them.
	ResultAliases map[string]string `json:"result_aliases,omitempty"`
}

// CompiledQuery is the compiler output: parameterized SQL text plus the
// positional argument list in placeholder order.
type CompiledQuery struct {
	SQL      string
	Args     []any
	Metadata QueryMetadata
}
