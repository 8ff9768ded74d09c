package gstcodes

import (
	"fmt"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

func (s *Service) validate(code Code) error {
	if strings.TrimSpace(code.Code) == "" {
		return fmt.Errorf("%w: code", shared.ErrRequiredField)
	}
	if strings.TrimSpace(code.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if code.GSTRateID <= 0 {
		return fmt.Errorf("%w: gst_rate_id must reference a rate slab", shared.ErrValidation)
	}
	if code.EffectiveFrom != nil && code.EffectiveTo != nil && code.EffectiveTo.Before(*code.EffectiveFrom) {
		return fmt.Errorf("%w: effective_to must not precede effective_from", shared.ErrValidation)
	}
	return nil
}
