package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

var (
	ErrInvalidStatus = errors.New("unknown payment status")
	ErrNoItems       = errors.New("invoice needs at least one line item")
	ErrItemReference = errors.New("line item cannot reference both a product and a service")
)

// Service provides business logic for invoices.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	if len(req.Items) == 0 {
		return Invoice{}, ErrNoItems
	}
	if err := validateItemRefs(req.Items); err != nil {
		return Invoice{}, err
	}
	payments, err := buildPayments(req.Payments)
	if err != nil {
		return Invoice{}, err
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		number = generateInvoiceNumber()
	}

	invoice := assemble(req.Items, payments, req.PackagingCharges, req.ShippingCharges, req.DiscountAmount, req.ReconciledAmount)
	invoice.InvoiceNumber = number
	invoice.OrderID = req.OrderID
	invoice.CustomerID = req.CustomerID
	invoice.CustomerGST = req.CustomerGST
	invoice.InvoiceDate = req.InvoiceDate
	invoice.Notes = req.Notes

	id, err := s.repo.Create(ctx, invoice)
	if err != nil {
		return Invoice{}, err
	}
	return s.repo.Get(ctx, id)
}

// Update replaces the invoice header and its children wholesale, in one
// transaction, recomputing amounts and the derived payment status.
func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, ErrNotFound
	}
	if len(req.Items) == 0 {
		return Invoice{}, ErrNoItems
	}
	if err := validateItemRefs(req.Items); err != nil {
		return Invoice{}, err
	}
	payments, err := buildPayments(req.Payments)
	if err != nil {
		return Invoice{}, err
	}

	invoice := assemble(req.Items, payments, req.PackagingCharges, req.ShippingCharges, req.DiscountAmount, req.ReconciledAmount)
	invoice.OrderID = req.OrderID
	invoice.CustomerID = req.CustomerID
	invoice.CustomerGST = req.CustomerGST
	invoice.InvoiceDate = req.InvoiceDate
	invoice.Notes = req.Notes

	if err := s.repo.Update(ctx, id, invoice); err != nil {
		return Invoice{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	if req.Status != "" && !finance.PaymentStatus(req.Status).Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// assemble computes the invoice amounts from its lines and charges and
// derives the payment status. The invoice amount is the sum of line totals;
// the adjusted amount additionally carries packaging and shipping charges
// less the discount, truncated the same way as line amounts.
func assemble(itemReqs []InvoiceItemRequest, payments []Payment,
	packaging, shipping, discount decimal.Decimal, reconciled *decimal.Decimal) Invoice {

	items := make([]InvoiceItem, 0, len(itemReqs))
	lines := make([]finance.LineTotal, 0, len(itemReqs))
	for _, req := range itemReqs {
		line := finance.ComputeLineTotal(req.Quantity, req.UnitRate, req.TaxPercent)
		lines = append(lines, line)
		items = append(items, InvoiceItem{
			ProductID:     req.ProductID,
			ServiceItemID: req.ServiceItemID,
			Description:   req.Description,
			Quantity:      req.Quantity,
			UnitRate:      req.UnitRate,
			TaxPercent:    req.TaxPercent,
			BaseAmount:    line.Base,
			TaxAmount:     line.Tax,
			TotalAmount:   line.Total,
		})
	}

	totals := finance.AggregateLines(lines)
	adjusted := finance.Truncate2(totals.Value.Add(packaging).Add(shipping).Sub(discount))

	reconciledAmount := adjusted
	if reconciled != nil {
		reconciledAmount = finance.Truncate2(*reconciled)
	}

	statuses := make([]finance.PaymentStatus, 0, len(payments))
	for _, p := range payments {
		statuses = append(statuses, p.Status)
	}

	return Invoice{
		InvoiceAmount:    totals.Value,
		PackagingCharges: packaging,
		ShippingCharges:  shipping,
		DiscountAmount:   discount,
		AdjustedAmount:   adjusted,
		ReconciledAmount: reconciledAmount,
		Status:           finance.InvoicePaymentStatus(statuses),
		Items:            items,
		Payments:         payments,
	}
}

func buildPayments(reqs []PaymentRequest) ([]Payment, error) {
	payments := make([]Payment, 0, len(reqs))
	for _, req := range reqs {
		status := finance.PaymentStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
		}
		payments = append(payments, Payment{
			Reference: uuid.NewString(),
			Amount:    req.Amount,
			PaidOn:    req.PaidOn,
			Mode:      req.Mode,
			Status:    status,
			Notes:     req.Notes,
		})
	}
	return payments, nil
}

func validateItemRefs(items []InvoiceItemRequest) error {
	for _, it := range items {
		if it.ProductID != nil && it.ServiceItemID != nil {
			return ErrItemReference
		}
	}
	return nil
}

func generateInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV-" + suffix
}
