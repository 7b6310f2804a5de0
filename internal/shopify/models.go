package shopify

import (
	"time"
)

// Product represents a Shopify product
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html,omitempty"`
	Vendor      string     `json:"vendor,omitempty"`
	ProductType string     `json:"product_type,omitempty"`
	Handle      string     `json:"handle,omitempty"`
	Status      string     `json:"status,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Variants    []Variant  `json:"variants,omitempty"`
	Images      []Image    `json:"images,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Variant represents a product variant
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id,omitempty"`
	Title             string  `json:"title,omitempty"`
	Price             string  `json:"price,omitempty"`
	Sku               string  `json:"sku,omitempty"`
	Position          int     `json:"position,omitempty"`
	Option1           *string `json:"option1,omitempty"`
	Option2           *string `json:"option2,omitempty"`
	Option3           *string `json:"option3,omitempty"`
	Barcode           *string `json:"barcode,omitempty"`
	InventoryItemID   int64   `json:"inventory_item_id,omitempty"`
	InventoryQuantity int     `json:"inventory_quantity,omitempty"`
}

// Image represents a product image
type Image struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id,omitempty"`
	Position  int    `json:"position,omitempty"`
	Src       string `json:"src,omitempty"`
}

// Option represents a product option
type Option struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name,omitempty"`
	Position int      `json:"position,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// Customer represents a Shopify customer
type Customer struct {
	ID               int64  `json:"id"`
	Email            string `json:"email,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Tags             string `json:"tags,omitempty"`
	AcceptsMarketing bool   `json:"accepts_marketing,omitempty"`
}

// Order represents a Shopify order
type Order struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name,omitempty"`
	Email           string     `json:"email,omitempty"`
	Tags            string     `json:"tags,omitempty"`
	TotalPrice      string     `json:"total_price,omitempty"`
	FinancialStatus string     `json:"financial_status,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// Webhook represents a webhook subscription
type Webhook struct {
	ID      int64  `json:"id"`
	Address string `json:"address"`
	Topic   string `json:"topic"`
	Format  string `json:"format,omitempty"`
}

// Metafield represents an entity metafield
type Metafield struct {
	ID        int64       `json:"id,omitempty"`
	Namespace string      `json:"namespace,omitempty"`
	Key       string      `json:"key,omitempty"`
	Value     interface{} `json:"value,omitempty"`
	Type      string      `json:"type,omitempty"`
}

// InventoryAdjustment is the payload for a relative inventory-level mutation.
// Ids come from decoded GraphQL identifiers and stay strings on the wire.
type InventoryAdjustment struct {
	LocationID          string `json:"location_id"`
	InventoryItemID     string `json:"inventory_item_id"`
	AvailableAdjustment int    `json:"available_adjustment"`
}

// InventoryLevelSet is the payload for an absolute inventory-level mutation.
type InventoryLevelSet struct {
	LocationID      string `json:"location_id"`
	InventoryItemID string `json:"inventory_item_id"`
	Available       int    `json:"available"`
}
