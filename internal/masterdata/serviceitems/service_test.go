package serviceitems

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type mockRepository struct {
	items  map[int64]ServiceItem
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[int64]ServiceItem), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, _ shared.ListFilters) ([]ServiceItem, int, error) {
	var out []ServiceItem
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (ServiceItem, error) {
	s, ok := m.items[id]
	if !ok {
		return ServiceItem{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *mockRepository) Create(_ context.Context, item ServiceItem) (ServiceItem, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, item ServiceItem) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	item.ID = id
	m.items[id] = item
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreateValidatesFields(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), ServiceItem{GSTCodeID: 1})
	assert.ErrorIs(t, err, shared.ErrRequiredField)

	_, err = svc.Create(context.Background(), ServiceItem{Name: "Installation"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAndUpdateServiceItem(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), ServiceItem{
		Name:      "Installation",
		Price:     decimal.RequireFromString("2500.00"),
		GSTCodeID: 1,
		IsActive:  true,
	})
	require.NoError(t, err)

	created.Price = decimal.RequireFromString("3000.00")
	require.NoError(t, svc.Update(context.Background(), created.ID, created))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3000.00")))
}
