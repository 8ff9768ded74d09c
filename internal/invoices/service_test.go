package invoices

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
	invoices map[int64]Invoice
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{invoices: make(map[int64]Invoice), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if req.Status != "" && string(inv.Status) != req.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return Invoice{}, ErrNotFound
	}
	return inv, nil
}

func (m *mockRepository) Create(_ context.Context, invoice Invoice) (int64, error) {
	invoice.ID = m.nextID
	m.nextID++
	m.invoices[invoice.ID] = invoice
	return invoice.ID, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, invoice Invoice) error {
	existing, ok := m.invoices[id]
	if !ok {
		return ErrNotFound
	}
	invoice.ID = id
	invoice.InvoiceNumber = existing.InvoiceNumber
	m.invoices[id] = invoice
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func createRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		CustomerID:  1,
		InvoiceDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Items: []InvoiceItemRequest{
			{
				Description: "Widget",
				Quantity:    2,
				UnitRate:    decimal.RequireFromString("100.00"),
				TaxPercent:  decimal.RequireFromString("18"),
			},
		},
	}
}

func TestCreateComputesAmounts(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.PackagingCharges = decimal.RequireFromString("50.00")
	req.ShippingCharges = decimal.RequireFromString("120.00")
	req.DiscountAmount = decimal.RequireFromString("6.00")

	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "236.00", inv.InvoiceAmount.StringFixed(2))
	assert.Equal(t, "400.00", inv.AdjustedAmount.StringFixed(2))
	// Reconciled defaults to the adjusted amount when the caller omits it.
	assert.Equal(t, "400.00", inv.ReconciledAmount.StringFixed(2))
}

func TestCreateHonoursExplicitReconciledAmount(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	reconciled := decimal.RequireFromString("230.005")
	req.ReconciledAmount = &reconciled

	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "230.00", inv.ReconciledAmount.StringFixed(2))
}

func TestCreateGeneratesInvoiceNumber(t *testing.T) {
	svc := NewService(newMockRepository())

	inv, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "INV-"))
}

func TestStatusDerivedFromPayments(t *testing.T) {
	svc := NewService(newMockRepository())

	// No payments: pending.
	inv, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, finance.PaymentStatusPending, inv.Status)

	// All payments settled: paid.
	req := createRequest()
	req.Payments = []PaymentRequest{
		{Amount: decimal.RequireFromString("118.00"), PaidOn: req.InvoiceDate, Status: "Paid"},
		{Amount: decimal.RequireFromString("118.00"), PaidOn: req.InvoiceDate, Status: "Paid"},
	}
	inv, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, finance.PaymentStatusPaid, inv.Status)

	// A partially paid instalment downgrades the invoice.
	req.Payments[1].Status = "PartiallyPaid"
	inv, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, finance.PaymentStatusPartiallyPaid, inv.Status)

	// Any pending instalment wins over everything else.
	req.Payments[0].Status = "Pending"
	inv, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, finance.PaymentStatusPending, inv.Status)
}

func TestCreateRejectsUnknownPaymentStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Payments = []PaymentRequest{
		{Amount: decimal.RequireFromString("100.00"), PaidOn: req.InvoiceDate, Status: "Settled"},
	}
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateReplacesChildrenAndRederivesStatus(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateInvoiceRequest{
		CustomerID:  1,
		InvoiceDate: created.InvoiceDate,
		Items: []InvoiceItemRequest{
			{
				Description: "Replacement",
				Quantity:    1,
				UnitRate:    decimal.RequireFromString("1000.00"),
				TaxPercent:  decimal.Zero,
			},
		},
		Payments: []PaymentRequest{
			{Amount: decimal.RequireFromString("1000.00"), PaidOn: created.InvoiceDate, Status: "Paid"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", updated.InvoiceAmount.StringFixed(2))
	assert.Equal(t, finance.PaymentStatusPaid, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewService(newMockRepository())

	_, _, err := svc.List(context.Background(), ListInvoicesRequest{Status: "Overdue"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc := NewService(newMockRepository())

	req := createRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoItems)
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
