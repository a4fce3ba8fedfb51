package kpi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePeriodConfig fails with ErrInvalidPeriodConfig when the week range,
// year, goal or totals scope cannot describe a period.
func ValidatePeriodConfig(cfg domain.PeriodConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w %q: %s", ErrInvalidPeriodConfig, cfg.Name, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w %q: %v", ErrInvalidPeriodConfig, cfg.Name, err)
	}
	if cfg.GoalAmount.IsNegative() {
		return fmt.Errorf("%w %q: goal %s is negative", ErrInvalidPeriodConfig, cfg.Name, cfg.GoalAmount)
	}
	return nil
}
