package models

import "time"

type Wholesaler struct {
	WholesalerID string    `json:"wholesaler_id"`
	Name         string    `json:"name"`
	Region       string    `json:"region,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductCategory struct {
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// WholesalerCategory assigns a wholesaler to a category. Assignments are
// the canonical soft dependency of both sides.
type WholesalerCategory struct {
	WholesalerID string    `json:"wholesaler_id"`
	CategoryID   string    `json:"category_id"`
	Comment      string    `json:"comment,omitempty"`
	LinkDate     time.Time `json:"link_date"`
}

type ProductDefinition struct {
	ProductDefID string    `json:"product_def_id"`
	CategoryID   string    `json:"category_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Offering struct {
	OfferingID   string    `json:"offering_id"`
	WholesalerID string    `json:"wholesaler_id"`
	CategoryID   string    `json:"category_id"`
	ProductDefID string    `json:"product_def_id"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

type OfferingAttribute struct {
	AttributeID   string `json:"attribute_id"`
	OfferingID    string `json:"offering_id"`
	AttributeName string `json:"attribute_name"`
	Value         string `json:"value"`
}

type OfferingLink struct {
	LinkID     string `json:"link_id"`
	OfferingID string `json:"offering_id"`
	URL        string `json:"url"`
	Notes      string `json:"notes,omitempty"`
}

type ProductImage struct {
	ImageID      string `json:"image_id"`
	ProductDefID string `json:"product_def_id"`
	ObjectKey    string `json:"object_key"`
	SortOrder    int    `json:"sort_order"`
}

type Order struct {
	OrderID      string    `json:"order_id"`
	WholesalerID string    `json:"wholesaler_id"`
	OrderDate    time.Time `json:"order_date"`
	Status       string    `json:"status"`
}

type OrderItem struct {
	OrderItemID string  `json:"order_item_id"`
	OrderID     string  `json:"order_id"`
	OfferingID  string  `json:"offering_id"`
	Quantity    int     `json:"quantity"`
	ItemPrice   float64 `json:"item_price"`
}
