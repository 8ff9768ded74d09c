package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type mockRepository struct {
	products map[int64]Product
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{products: make(map[int64]Product), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, filters shared.ListFilters) ([]Product, int, error) {
	var out []Product
	for _, p := range m.products {
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (m *mockRepository) Create(_ context.Context, product Product) (Product, error) {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return product, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, product Product) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	product.ID = id
	m.products[id] = product
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Product{GSTCodeID: 1})
	assert.ErrorIs(t, err, shared.ErrRequiredField)

	_, err = svc.Create(context.Background(), Product{Name: "Widget", GSTCodeID: 0})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), Product{
		Name:      "Widget",
		GSTCodeID: 1,
		Price:     decimal.NewFromInt(-10),
	})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), Product{
		Name:      "Widget",
		Price:     decimal.RequireFromString("149.99"),
		GSTCodeID: 1,
		IsActive:  true,
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("149.99")))
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
