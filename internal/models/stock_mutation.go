package models

import (
	"time"
)

// StockMutation is one audited stock write issued against the shop.
type StockMutation struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ProductID      string    `json:"product_id"`
	VariantID      string    `json:"variant_id"`
	Identifier     string    `json:"identifier"`
	IdentifierKind string    `json:"identifier_kind"`
	Operation      string    `json:"operation"` // "adjust" or "set"
	OldQuantity    int       `json:"old_quantity"`
	NewQuantity    int       `json:"new_quantity"`
	Delta          int       `json:"delta"`
	CreatedAt      time.Time `json:"created_at"`
}
