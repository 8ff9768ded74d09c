package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

// Order is a customer purchase order with its line items and any advance
// payments collected against it.
type Order struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"order_number"`
	ProformaInvoice *string             `json:"proforma_invoice,omitempty"`
	ProformaDate    *time.Time          `json:"proforma_date,omitempty"`
	CustomerID      int64               `json:"customer_id"`
	CustomerName    string              `json:"customer_name,omitempty"`
	OrderDate       time.Time           `json:"order_date"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	Status          finance.OrderStatus `json:"status"`
	OrderValue      decimal.Decimal     `json:"order_value"`
	Notes           *string             `json:"notes,omitempty"`
	Items           []OrderItem         `json:"items,omitempty"`
	Advances        []AdvancePayment    `json:"advances,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderItem struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
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

// AdvancePayment records money received before invoicing.
type AdvancePayment struct {
	ID        int64                 `json:"id"`
	OrderID   int64                 `json:"order_id"`
	Reference string                `json:"reference"`
	Amount    decimal.Decimal       `json:"amount"`
	PaidOn    time.Time             `json:"paid_on"`
	Mode      string                `json:"mode,omitempty"`
	Status    finance.PaymentStatus `json:"status"`
	Notes     *string               `json:"notes,omitempty"`
}

type OrderItemRequest struct {
	ProductID     *int64          `json:"product_id,omitempty"`
	ServiceItemID *int64          `json:"service_item_id,omitempty"`
	Description   string          `json:"description" validate:"required,max=500"`
	Quantity      int64           `json:"quantity" validate:"gt=0"`
	UnitRate      decimal.Decimal `json:"unit_rate"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
}

type AdvanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidOn time.Time       `json:"paid_on" validate:"required"`
	Mode   string          `json:"mode" validate:"omitempty,max=50"`
	Status string          `json:"status" validate:"omitempty,max=20"`
	Notes  *string         `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	OrderNumber     string             `json:"order_number" validate:"omitempty,max=50"`
	ProformaInvoice *string            `json:"proforma_invoice,omitempty" validate:"omitempty,max=50"`
	ProformaDate    *time.Time         `json:"proforma_date,omitempty"`
	CustomerID      int64              `json:"customer_id" validate:"required,gt=0"`
	OrderDate       time.Time          `json:"order_date" validate:"required"`
	DeliveryDate    *time.Time         `json:"delivery_date,omitempty"`
	Status          string             `json:"status" validate:"omitempty,max=20"`
	Notes           *string            `json:"notes,omitempty"`
	Items           []OrderItemRequest `json:"items" validate:"min=1,dive"`
	Advances        []AdvanceRequest   `json:"advances" validate:"dive"`
}

type UpdateOrderRequest struct {
	ProformaInvoice *string            `json:"proforma_invoice,omitempty" validate:"omitempty,max=50"`
	ProformaDate    *time.Time         `json:"proforma_date,omitempty"`
	CustomerID      int64              `json:"customer_id" validate:"required,gt=0"`
	OrderDate       time.Time          `json:"order_date" validate:"required"`
	DeliveryDate    *time.Time         `json:"delivery_date,omitempty"`
	Status          string             `json:"status" validate:"required,max=20"`
	Notes           *string            `json:"notes,omitempty"`
	Items           []OrderItemRequest `json:"items" validate:"min=1,dive"`
	Advances        []AdvanceRequest   `json:"advances" validate:"dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrdersRequest carries the supported list filters.
type ListOrdersRequest struct {
	Status      string
	CustomerID  int64
	OrderNumber string
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}
