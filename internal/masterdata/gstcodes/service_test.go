package gstcodes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type mockRepository struct {
	codes  map[int64]Code
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{codes: make(map[int64]Code), nextID: 1}
}

func (m *mockRepository) List(_ context.Context, filters shared.ListFilters) ([]Code, int, error) {
	var out []Code
	for _, c := range m.codes {
		if filters.GSTRateID != nil && c.GSTRateID != *filters.GSTRateID {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Code, error) {
	c, ok := m.codes[id]
	if !ok {
		return Code{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) Create(_ context.Context, code Code) (Code, error) {
	for _, existing := range m.codes {
		if existing.Code == code.Code {
			return Code{}, shared.ErrDuplicate
		}
	}
	code.ID = m.nextID
	m.nextID++
	m.codes[code.ID] = code
	return code, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, code Code) error {
	if _, ok := m.codes[id]; !ok {
		return shared.ErrNotFound
	}
	code.ID = id
	m.codes[id] = code
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.codes[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.codes, id)
	return nil
}

func validCode() Code {
	return Code{Code: "998314", Name: "IT consulting", GSTRateID: 1, IsActive: true}
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc := NewService(newMockRepository())

	c := validCode()
	c.Code = "  "
	_, err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, shared.ErrRequiredField)

	c = validCode()
	c.Name = ""
	_, err = svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, shared.ErrRequiredField)
}

func TestCreateRequiresRateReference(t *testing.T) {
	svc := NewService(newMockRepository())

	c := validCode()
	c.GSTRateID = 0
	_, err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRejectsInvertedEffectiveWindow(t *testing.T) {
	svc := NewService(newMockRepository())

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	c := validCode()
	c.EffectiveFrom = &from
	c.EffectiveTo = &to
	_, err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDuplicateCodeRejected(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), validCode())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCode())
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestListFiltersByRate(t *testing.T) {
	svc := NewService(newMockRepository())

	first := validCode()
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validCode()
	second.Code = "998313"
	second.GSTRateID = 2
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	rateID := int64(2)
	codes, total, err := svc.List(context.Background(), shared.ListFilters{GSTRateID: &rateID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, codes, 1)
	assert.Equal(t, "998313", codes[0].Code)
}
