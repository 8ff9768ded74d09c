package serviceitems

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceItem is a billable service in the catalog, priced per engagement
// rather than per physical unit.
type ServiceItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	GSTCodeID   int64           `json:"gst_code_id"`
	IsActive    bool            `json:"is_active"`

	GSTCode       string          `json:"gst_code"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
