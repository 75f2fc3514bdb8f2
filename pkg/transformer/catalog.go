package transformer

func fieldSet(fields ...string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

var (
	wholesalerFields = fieldSet("wholesaler_id", "name", "region", "status", "created_at")
	categoryFields   = fieldSet("category_id", "name", "created_at")
	assignmentFields = fieldSet("wholesaler_id", "category_id", "comment", "link_date")
	productDefFields = fieldSet("product_def_id", "category_id", "title", "description", "created_at")
	offeringFields   = fieldSet("offering_id", "wholesaler_id", "category_id", "product_def_id", "price", "currency", "created_at")
	attributeFields  = fieldSet("attribute_id", "offering_id", "attribute_name", "value")
	linkFields       = fieldSet("link_id", "offering_id", "url", "notes")
	imageFields      = fieldSet("image_id", "product_def_id", "object_key", "sort_order")
	orderFields      = fieldSet("order_id", "wholesaler_id", "order_date", "status")
	orderItemFields  = fieldSet("order_item_id", "order_id", "offering_id", "quantity", "item_price")
)

// DefaultAliasRegistry mirrors the aliases used by the whitelist's view
// configurations.
func DefaultAliasRegistry() AliasRegistry {
	return AliasRegistry{
		"w":   {Schema: "wholesaler", SourceTable: "wholesaler", Fields: wholesalerFields},
		"pc":  {Schema: "product_category", SourceTable: "product_category", Fields: categoryFields},
		"wc":  {Schema: "assignment", SourceTable: "wholesaler_category", Fields: assignmentFields},
		"pd":  {Schema: "product_definition", SourceTable: "product_definition", Fields: productDefFields},
		"wio": {Schema: "offering", SourceTable: "wholesaler_item_offering", Fields: offeringFields},
		"woa": {Schema: "attribute", SourceTable: "wholesaler_offering_attribute", Fields: attributeFields},
		"wol": {Schema: "link", SourceTable: "wholesaler_offering_link", Fields: linkFields},
		"pdi": {Schema: "image", SourceTable: "product_definition_image", Fields: imageFields},
		"o":   {Schema: "order", SourceTable: "orders", Fields: orderFields},
		"oi":  {Schema: "order_item", SourceTable: "order_item", Fields: orderItemFields},
	}
}

// ShapeForView returns the target shape for a named query target. Every
// name the whitelist registers must have a shape here, or valid queries
// would compile and then fail to transform.
func ShapeForView(view string) (Shape, bool) {
	switch view {
	case "wholesalers", "wholesaler":
		return Shape{Fields: wholesalerFields}, true
	case "categories", "product_category":
		return Shape{Fields: categoryFields}, true
	case "wholesaler_category":
		return Shape{Fields: assignmentFields}, true
	case "wholesaler_offering_attribute":
		return Shape{Fields: attributeFields}, true
	case "wholesaler_offering_link":
		return Shape{Fields: linkFields}, true
	case "product_definition_image":
		return Shape{Fields: imageFields}, true
	case "product_definitions", "product_definition":
		return Shape{
			Fields:    productDefFields,
			Relations: map[string]string{"category": "product_category"},
		}, true
	case "offerings", "wholesaler_item_offering":
		return Shape{
			Fields: offeringFields,
			Relations: map[string]string{
				"wholesaler":  "wholesaler",
				"category":    "product_category",
				"product_def": "product_definition",
			},
		}, true
	case "orders_view", "orders":
		return Shape{
			Fields:    orderFields,
			Relations: map[string]string{"wholesaler": "wholesaler"},
		}, true
	case "order_items", "order_item":
		return Shape{
			Fields: orderItemFields,
			Relations: map[string]string{
				"order":    "order",
				"offering": "offering",
			},
		}, true
	default:
		return Shape{}, false
	}
}
