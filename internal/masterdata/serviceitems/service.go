package serviceitems

import (
	"context"
	"fmt"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]ServiceItem, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (ServiceItem, error) {
	if id <= 0 {
		return ServiceItem{}, fmt.Errorf("%w: service ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, item ServiceItem) (ServiceItem, error) {
	if err := s.validate(item); err != nil {
		return ServiceItem{}, err
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, id int64, item ServiceItem) error {
	if id <= 0 {
		return fmt.Errorf("%w: service ID must be positive", shared.ErrInvalidID)
	}
	if err := s.validate(item); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, item)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: service ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Delete(ctx, id)
}
