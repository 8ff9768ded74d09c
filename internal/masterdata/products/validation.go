package products

import (
	"fmt"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/shared"
)

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name", shared.ErrRequiredField)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", shared.ErrValidation)
	}
	if p.GSTCodeID <= 0 {
		return fmt.Errorf("%w: gst_code_id must reference a GST code", shared.ErrValidation)
	}
	return nil
}
