package gst

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type mockRepository struct {
	rates  map[int64]Rate
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{rates: make(map[int64]Rate), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, filters shared.ListFilters) ([]Rate, int, error) {
	var out []Rate
	for _, r := range m.rates {
		if filters.IsActive != nil && r.IsActive != *filters.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Rate, error) {
	r, ok := m.rates[id]
	if !ok {
		return Rate{}, shared.ErrNotFound
	}
	return r, nil
}

func (m *mockRepository) Create(_ context.Context, rate Rate) (Rate, error) {
	rate.ID = m.nextID
	m.nextID++
	m.rates[rate.ID] = rate
	return rate, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, rate Rate) error {
	if _, ok := m.rates[id]; !ok {
		return shared.ErrNotFound
	}
	rate.ID = id
	m.rates[id] = rate
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.rates[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.rates, id)
	return nil
}

func TestCreateRejectsOutOfRangePercentage(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Rate{TaxPercentage: decimal.NewFromInt(120)})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), Rate{TaxPercentage: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateAndGetRate(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), Rate{
		TaxPercentage: decimal.NewFromInt(18),
		IsActive:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.TaxPercentage.Equal(decimal.NewFromInt(18)))
	assert.True(t, got.IsActive)
}

func TestGetRejectsInvalidID(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrInvalidID)
}

func TestUpdateMissingRate(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.Update(context.Background(), 42, Rate{TaxPercentage: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListFiltersByActive(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), Rate{TaxPercentage: decimal.NewFromInt(5), IsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), Rate{TaxPercentage: decimal.NewFromInt(12), IsActive: false})
	require.NoError(t, err)

	active := true
	rates, total, err := svc.List(context.Background(), shared.ListFilters{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, rates, 1)
	assert.True(t, rates[0].IsActive)
}
