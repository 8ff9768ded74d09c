package gstcodes

import (
	"time"

	"github.com/shopspring/decimal"
)

// Code represents an HSN/SAC style GST code bound to a rate slab.
type Code struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	EffectiveFrom *time.Time `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	IsActive      bool       `json:"is_active"`
	GSTRateID     int64      `json:"gst_rate_id"`

	// TaxPercentage is resolved from the linked rate slab on reads.
	TaxPercentage decimal.Decimal `json:"tax_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
