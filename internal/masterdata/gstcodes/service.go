package gstcodes

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Code, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Code, error) {
	if id <= 0 {
		return Code{}, fmt.Errorf("%w: GST code ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, code Code) (Code, error) {
	if err := s.validate(code); err != nil {
		return Code{}, err
	}
	return s.repo.Create(ctx, code)
}

func (s *Service) Update(ctx context.Context, id int64, code Code) error {
	if id <= 0 {
		return fmt.Errorf("%w: GST code ID must be positive", shared.ErrInvalidID)
	}
	if err := s.validate(code); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, code)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: GST code ID must be positive", shared.ErrInvalidID)
	}
	return s.repo.Delete(ctx, id)
}
