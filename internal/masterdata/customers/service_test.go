package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type mockRepository struct {
	customers map[int64]Customer
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: make(map[int64]Customer), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, _ shared.ListFilters) ([]Customer, int, error) {
	var out []Customer
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return Customer{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) Create(_ context.Context, customer Customer) (Customer, error) {
	customer.ID = m.nextID
	m.nextID++
	m.customers[customer.ID] = customer
	return customer, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, customer Customer) error {
	if _, ok := m.customers[id]; !ok {
		return shared.ErrNotFound
	}
	customer.ID = id
	m.customers[id] = customer
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Customer{Email: "a@b.com"})
	assert.ErrorIs(t, err, shared.ErrRequiredField)
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Customer{Name: "Acme", Email: "not-an-email"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAndGetCustomer(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), Customer{
		Name:           "Acme Traders",
		ContactPerson:  "R. Sharma",
		Email:          "accounts@acme.example",
		GSTIN:          "27AAPFU0939F1ZV",
		BillingAddress: "12 MG Road, Pune",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", got.Name)
	assert.Equal(t, "27AAPFU0939F1ZV", got.GSTIN)
}

func TestGetRejectsNonPositiveID(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Get(context.Background(), -1)
	assert.ErrorIs(t, err, shared.ErrInvalidID)
}
