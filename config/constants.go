package config

const (
	ErrNoRows      string = "no rows in result set"
	ErrEnvNotFound string = "No .env file found"

	// Entity type tags used by the dependency policy table
	EntityWholesaler        string = "wholesaler"
	EntityCategory          string = "category"
	EntityProductDefinition string = "product_definition"
	EntityOffering          string = "offering"
	EntityOrder             string = "order"

	// Condition operators
	OperatorEquals             string = "EQUALS"
	OperatorNotEquals          string = "NOT_EQUALS"
	OperatorGreaterThan        string = "GREATER_THAN"
	OperatorGreaterThanOrEqual string = "GREATER_THAN_OR_EQUAL"
	OperatorLessThan           string = "LESS_THAN"
	OperatorLessThanOrEqual    string = "LESS_THAN_OR_EQUAL"
	OperatorLike               string = "LIKE"
	OperatorIn                 string = "IN"
	OperatorIsNull             string = "IS_NULL"
	OperatorIsNotNull          string = "IS_NOT_NULL"

	// Logical operators
	LogicalAnd string = "AND"
	LogicalOr  string = "OR"

	// Join types
	JoinInner string = "INNER"
	JoinLeft  string = "LEFT"
)

var (
	ENTITY_TYPES = map[string]bool{
		EntityWholesaler:        true,
		EntityCategory:          true,
		EntityProductDefinition: true,
		EntityOffering:          true,
		EntityOrder:             true,
	}

	ORDER_DIRECTIONS = map[string]bool{
		"ASC":  true,
		"DESC": true,
	}
)
