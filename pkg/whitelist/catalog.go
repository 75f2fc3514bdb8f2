package whitelist

import (
	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/models"
)

func onEq(left, right string) *models.WhereCondition {
	return &models.WhereCondition{Key: left, Operator: config.OperatorEquals, Value: right}
}

// DefaultRegistry builds the catalog schema whitelist. Loaded once in main;
// Validate must pass before the service starts.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.AddTable("wholesaler", "w",
		"wholesaler_id", "name", "region", "status", "created_at")
	r.AddTable("product_category", "pc",
		"category_id", "name", "created_at")
	r.AddTable("wholesaler_category", "wc",
		"wholesaler_id", "category_id", "comment", "link_date")
	r.AddTable("product_definition", "pd",
		"product_def_id", "category_id", "title", "description", "created_at")
	r.AddTable("wholesaler_item_offering", "wio",
		"offering_id", "wholesaler_id", "category_id", "product_def_id", "price", "currency", "created_at")
	r.AddTable("wholesaler_offering_attribute", "woa",
		"attribute_id", "offering_id", "attribute_name", "value")
	r.AddTable("wholesaler_offering_link", "wol",
		"link_id", "offering_id", "url", "notes")
	r.AddTable("product_definition_image", "pdi",
		"image_id", "product_def_id", "object_key", "sort_order")
	r.AddTable("orders", "o",
		"order_id", "wholesaler_id", "order_date", "status")
	r.AddTable("order_item", "oi",
		"order_item_id", "order_id", "offering_id", "quantity", "item_price")

	r.AddView(models.ViewConfig{
		Name:      "wholesalers",
		BaseTable: "wholesaler",
		BaseAlias: "w",
	})

	r.AddView(models.ViewConfig{
		Name:      "categories",
		BaseTable: "product_category",
		BaseAlias: "pc",
	})

	r.AddView(models.ViewConfig{
		Name:      "product_definitions",
		BaseTable: "product_definition",
		BaseAlias: "pd",
		Joins: []models.JoinClause{
			{
				Type:  config.JoinLeft,
				Table: "product_category",
				Alias: "pc",
				On:    []*models.WhereCondition{onEq("pd.category_id", "pc.category_id")},
			},
		},
	})

	r.AddView(models.ViewConfig{
		Name:      "offerings",
		BaseTable: "wholesaler_item_offering",
		BaseAlias: "wio",
		Joins: []models.JoinClause{
			{
				Type:  config.JoinInner,
				Table: "wholesaler",
				Alias: "w",
				On:    []*models.WhereCondition{onEq("wio.wholesaler_id", "w.wholesaler_id")},
			},
			{
				Type:  config.JoinLeft,
				Table: "product_category",
				Alias: "pc",
				On:    []*models.WhereCondition{onEq("wio.category_id", "pc.category_id")},
			},
			{
				Type:  config.JoinLeft,
				Table: "product_definition",
				Alias: "pd",
				On:    []*models.WhereCondition{onEq("wio.product_def_id", "pd.product_def_id")},
			},
		},
	})

	r.AddView(models.ViewConfig{
		Name:      "orders_view",
		BaseTable: "orders",
		BaseAlias: "o",
		Joins: []models.JoinClause{
			{
				Type:  config.JoinInner,
				Table: "wholesaler",
				Alias: "w",
				On:    []*models.WhereCondition{onEq("o.wholesaler_id", "w.wholesaler_id")},
			},
		},
	})

	r.AddView(models.ViewConfig{
		Name:      "order_items",
		BaseTable: "order_item",
		BaseAlias: "oi",
		Joins: []models.JoinClause{
			{
				Type:  config.JoinInner,
				Table: "orders",
				Alias: "o",
				On:    []*models.WhereCondition{onEq("oi.order_id", "o.order_id")},
			},
			{
				Type:  config.JoinLeft,
				Table: "wholesaler_item_offering",
				Alias: "wio",
				On:    []*models.WhereCondition{onEq("oi.offering_id", "wio.offering_id")},
			},
		},
	})

	return r
}
