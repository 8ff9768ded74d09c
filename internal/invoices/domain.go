package invoices

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

// Invoice is a billing document raised against a customer, optionally linked
// to the order it bills. Its payment status is derived from the statuses of
// the recorded payments, never set directly.
type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	OrderID       *int64    `json:"order_id,omitempty"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerGST   string    `json:"customer_gst,omitempty"`
	InvoiceDate   time.Time `json:"invoice_date"`

	InvoiceAmount    decimal.Decimal `json:"invoice_amount"`
	PackagingCharges decimal.Decimal `json:"packaging_charges"`
	ShippingCharges  decimal.Decimal `json:"shipping_charges"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	AdjustedAmount   decimal.Decimal `json:"adjusted_invoice_amount"`
	ReconciledAmount decimal.Decimal `json:"reconciled_invoice_amount"`

	Status   finance.PaymentStatus `json:"status"`
	Notes    *string               `json:"notes,omitempty"`
	Items    []InvoiceItem         `json:"items,omitempty"`
	Payments []Payment             `json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID            int64           `json:"id"`
	InvoiceID     int64           `json:"invoice_id"`
	ProductID     *int64          `json:"product_id,omitempty"`
	ServiceItemID *int64          `json:"service_item_id,omitempty"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	UnitRate      decimal.Decimal `json:"unit_rate"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Payment is money received against an invoice.
type Payment struct {
	ID        int64                 `json:"id"`
	InvoiceID int64                 `json:"invoice_id"`
	Reference string                `json:"reference"`
	Amount    decimal.Decimal       `json:"amount"`
	PaidOn    time.Time             `json:"paid_on"`
	Mode      string                `json:"mode,omitempty"`
	Status    finance.PaymentStatus `json:"status"`
	Notes     *string               `json:"notes,omitempty"`
}

type InvoiceItemRequest struct {
	ProductID     *int64          `json:"product_id,omitempty"`
	ServiceItemID *int64          `json:"service_item_id,omitempty"`
	Description   string          `json:"description" validate:"required,max=500"`
	Quantity      int64           `json:"quantity" validate:"gt=0"`
	UnitRate      decimal.Decimal `json:"unit_rate"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidOn time.Time       `json:"paid_on" validate:"required"`
	Mode   string          `json:"mode" validate:"omitempty,max=50"`
	Status string          `json:"status" validate:"required"`
	Notes  *string         `json:"notes,omitempty"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber    string               `json:"invoice_number" validate:"omitempty,max=50"`
	OrderID          *int64               `json:"order_id,omitempty"`
	CustomerID       int64                `json:"customer_id" validate:"required,gt=0"`
	CustomerGST      string               `json:"customer_gst" validate:"omitempty,max=20"`
	InvoiceDate      time.Time            `json:"invoice_date" validate:"required"`
	PackagingCharges decimal.Decimal      `json:"packaging_charges"`
	ShippingCharges  decimal.Decimal      `json:"shipping_charges"`
	DiscountAmount   decimal.Decimal      `json:"discount_amount"`
	ReconciledAmount *decimal.Decimal     `json:"reconciled_invoice_amount,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	Items            []InvoiceItemRequest `json:"items" validate:"min=1,dive"`
	Payments         []PaymentRequest     `json:"payments" validate:"dive"`
}

type UpdateInvoiceRequest struct {
	OrderID          *int64               `json:"order_id,omitempty"`
	CustomerID       int64                `json:"customer_id" validate:"required,gt=0"`
	CustomerGST      string               `json:"customer_gst" validate:"omitempty,max=20"`
	InvoiceDate      time.Time            `json:"invoice_date" validate:"required"`
	PackagingCharges decimal.Decimal      `json:"packaging_charges"`
	ShippingCharges  decimal.Decimal      `json:"shipping_charges"`
	DiscountAmount   decimal.Decimal      `json:"discount_amount"`
	ReconciledAmount *decimal.Decimal     `json:"reconciled_invoice_amount,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	Items            []InvoiceItemRequest `json:"items" validate:"min=1,dive"`
	Payments         []PaymentRequest     `json:"payments" validate:"dive"`
}

// ListInvoicesRequest carries the supported list filters.
type ListInvoicesRequest struct {
	Status        string
	CustomerID    int64
	InvoiceNumber string
	From          *time.Time
	To            *time.Time
	Page          int
	Limit         int
}
