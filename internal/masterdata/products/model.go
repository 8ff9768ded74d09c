package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable good in the catalog
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	GSTCodeID   int64           `json:"gst_code_id"`
	IsActive    bool            `json:"is_active"`

	// GSTCode and TaxPercentage are resolved from the linked code on reads.
	GSTCode       string          `json:"gst_code"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
