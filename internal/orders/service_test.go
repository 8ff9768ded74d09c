package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

type mockRepository struct {
	orders map[int64]Order
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: make(map[int64]Order), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		if req.Status != "" && string(o.Status) != req.Status {
			continue
		}
		if req.CustomerID > 0 && o.CustomerID != req.CustomerID {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (m *mockRepository) Create(_ context.Context, order Order) (int64, error) {
	for _, existing := range m.orders {
		if existing.OrderNumber == order.OrderNumber {
			return 0, ErrDuplicate
		}
	}
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, order Order) error {
	existing, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	order.ID = id
	order.OrderNumber = existing.OrderNumber
	m.orders[id] = order
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = finance.OrderStatus(status)
	m.orders[id] = o
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func createRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID: 1,
		OrderDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Items: []OrderItemRequest{
			{
				Description: "Widget",
				Quantity:    2,
				UnitRate:    decimal.RequireFromString("100.00"),
				TaxPercent:  decimal.RequireFromString("18"),
			},
		},
	}
}

func TestCreateComputesOrderValue(t *testing.T) {
	svc := NewService(newMockRepository())

	order, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// 2 x 100 = 200 base, 36 tax
	assert.Equal(t, "236.00", order.OrderValue.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "200.00", order.Items[0].BaseAmount.StringFixed(2))
	assert.Equal(t, "36.00", order.Items[0].TaxAmount.StringFixed(2))
}

func TestCreateTruncatesItemTotals(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Items = []OrderItemRequest{
		{
			Description: "Odd rate",
			Quantity:    3,
			UnitRate:    decimal.RequireFromString("10.005"),
			TaxPercent:  decimal.Zero,
		},
	}

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "30.01", order.OrderValue.StringFixed(2))
}

func TestCreateDefaultsStatusToActive(t *testing.T) {
	svc := NewService(newMockRepository())

	order, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, finance.OrderStatusActive, order.Status)
}

func TestCreateGeneratesOrderNumber(t *testing.T) {
	svc := NewService(newMockRepository())

	order, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, len("ORD-")+8)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Status = "Archived"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestCreateAssignsAdvanceReferences(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Advances = []AdvanceRequest{
		{Amount: decimal.RequireFromString("50.00"), PaidOn: req.OrderDate, Mode: "UPI"},
	}

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, order.Advances, 1)
	assert.NotEmpty(t, order.Advances[0].Reference)
	assert.Equal(t, finance.PaymentStatusPending, order.Advances[0].Status)
}

func TestCreateRejectsUnknownAdvanceStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Advances = []AdvanceRequest{
		{Amount: decimal.RequireFromString("50.00"), PaidOn: req.OrderDate, Status: "Refunded"},
	}

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestCreateRejectsItemWithProductAndService(t *testing.T) {
	svc := NewService(newMockRepository())

	productID, serviceID := int64(4), int64(9)
	req := createRequest()
	req.Items[0].ProductID = &productID
	req.Items[0].ServiceItemID = &serviceID

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrItemReference)
}

func TestUpdateReplacesItemsAndRecomputesValue(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateOrderRequest{
		CustomerID: 1,
		OrderDate:  created.OrderDate,
		Status:     string(finance.OrderStatusOnHold),
		Items: []OrderItemRequest{
			{
				Description: "Replacement",
				Quantity:    1,
				UnitRate:    decimal.RequireFromString("500.00"),
				TaxPercent:  decimal.RequireFromString("5"),
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "525.00", updated.OrderValue.StringFixed(2))
	assert.Equal(t, finance.OrderStatusOnHold, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Replacement", updated.Items[0].Description)
	// Order number survives a full rewrite.
	assert.Equal(t, created.OrderNumber, updated.OrderNumber)
}

func TestUpdateStatusValidatesTransitionTarget(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "Shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	order, err := svc.UpdateStatus(context.Background(), created.ID, string(finance.OrderStatusCompleted))
	require.NoError(t, err)
	assert.Equal(t, finance.OrderStatusCompleted, order.Status)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewService(newMockRepository())

	_, _, err := svc.List(context.Background(), ListOrdersRequest{Status: "Bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteMissingOrder(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
