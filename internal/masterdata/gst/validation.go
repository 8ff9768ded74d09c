package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

var maxPercentage = decimal.NewFromInt(100)

func (s *Service) validate(rate Rate) error {
	if rate.TaxPercentage.IsNegative() {
		return fmt.Errorf("%w: tax percentage must not be negative", shared.ErrValidation)
	}
	if rate.TaxPercentage.GreaterThan(maxPercentage) {
		return fmt.Errorf("%w: tax percentage must not exceed 100", shared.ErrValidation)
	}
	return nil
}
