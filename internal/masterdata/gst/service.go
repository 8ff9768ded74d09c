package gst

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Rate, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Rate, error) {
	if id <= 0 {
		return Rate{}, fmt.Errorf("%w: GST rate ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, rate Rate) (Rate, error) {
	if err := s.validate(rate); err != nil {
		return Rate{}, err
	}
	return s.repo.Create(ctx, rate)
}

func (s *Service) Update(ctx context.Context, id int64, rate Rate) error {
	if id <= 0 {
		return fmt.Errorf("%w: GST rate ID must be positive", shared.ErrInvalidID)
	}
	if err := s.validate(rate); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, rate)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: GST rate ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Delete(ctx, id)
}
