package gst

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate represents a GST rate slab
type Rate struct {
	ID            int64           `json:"id"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
