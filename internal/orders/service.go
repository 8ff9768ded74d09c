package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

var (
	ErrInvalidStatus  = errors.New("unknown order status")
	ErrInvalidPayment = errors.New("unknown advance payment status")
	ErrNoItems        = errors.New("order needs at least one line item")
	ErrItemReference  = errors.New("line item cannot reference both a product and a service")
)

// Service provides business logic for purchase orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	status := finance.OrderStatus(req.Status)
	if req.Status == "" {
		status = finance.OrderStatusActive
	}
	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if len(req.Items) == 0 {
		return Order{}, ErrNoItems
	}
	if err := validateItemRefs(req.Items); err != nil {
		return Order{}, err
	}
	advances, err := buildAdvances(req.Advances)
	if err != nil {
		return Order{}, err
	}

	number := strings.TrimSpace(req.OrderNumber)
	if number == "" {
		number = generateOrderNumber()
	}

	items, totals := buildItems(req.Items)
	order := Order{
		OrderNumber:     number,
		ProformaInvoice: req.ProformaInvoice,
		ProformaDate:    req.ProformaDate,
		CustomerID:      req.CustomerID,
		OrderDate:       req.OrderDate,
		DeliveryDate:    req.DeliveryDate,
		Status:          status,
		OrderValue:      totals.Value,
		Notes:           req.Notes,
		Items:           items,
		Advances:        advances,
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return Order{}, err
	}
	return s.repo.Get(ctx, id)
}

// Update replaces the order header and its children wholesale. Items and
// advances are rewritten inside the same transaction as the header so the
// stored order value can never disagree with its lines.
func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	status := finance.OrderStatus(req.Status)
	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if len(req.Items) == 0 {
		return Order{}, ErrNoItems
	}
	if err := validateItemRefs(req.Items); err != nil {
		return Order{}, err
	}
	advances, err := buildAdvances(req.Advances)
	if err != nil {
		return Order{}, err
	}

	items, totals := buildItems(req.Items)
	order := Order{
		ProformaInvoice: req.ProformaInvoice,
		ProformaDate:    req.ProformaDate,
		CustomerID:      req.CustomerID,
		OrderDate:       req.OrderDate,
		DeliveryDate:    req.DeliveryDate,
		Status:          status,
		OrderValue:      totals.Value,
		Notes:           req.Notes,
		Items:           items,
		Advances:        advances,
	}

	if err := s.repo.Update(ctx, id, order); err != nil {
		return Order{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	if !finance.OrderStatus(status).Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Order{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	if req.Status != "" && !finance.OrderStatus(req.Status).Valid() {
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

func buildItems(reqs []OrderItemRequest) ([]OrderItem, finance.DocumentTotal) {
	items := make([]OrderItem, 0, len(reqs))
	lines := make([]finance.LineTotal, 0, len(reqs))
	for _, req := range reqs {
		line := finance.ComputeLineTotal(req.Quantity, req.UnitRate, req.TaxPercent)
		lines = append(lines, line)
		items = append(items, OrderItem{
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
	return items, finance.AggregateLines(lines)
}

func buildAdvances(reqs []AdvanceRequest) ([]AdvancePayment, error) {
	advances := make([]AdvancePayment, 0, len(reqs))
	for _, req := range reqs {
		status := finance.PaymentStatus(req.Status)
		if req.Status == "" {
			status = finance.PaymentStatusPending
		}
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, req.Status)
		}
		advances = append(advances, AdvancePayment{
			Reference: uuid.NewString(),
			Amount:    req.Amount,
			PaidOn:    req.PaidOn,
			Mode:      req.Mode,
			Status:    status,
			Notes:     req.Notes,
		})
	}
	return advances, nil
}

func validateItemRefs(items []OrderItemRequest) error {
	for _, it := range items {
		if it.ProductID != nil && it.ServiceItemID != nil {
			return ErrItemReference
		}
	}
	return nil
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + suffix
}
