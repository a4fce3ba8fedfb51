package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/kpi"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
)

var ErrSourceUnavailable = errors.New("record source unavailable")

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service recomputes period snapshots from the configured record source.
type Service interface {
	Periods(ctx context.Context) ([]domain.PeriodConfig, error)
	// Snapshot computes the KPIs of a period. A nil week means the current ISO
	// week according to the service clock.
	Snapshot(ctx context.Context, period string, week *int) (domain.KPISnapshot, error)
}

type service struct {
	periods config.PeriodRegistry
	source  source.Source
	clock   Clock
}

func NewService(periods config.PeriodRegistry, src source.Source, clock Clock) Service {
	if clock == nil {
		clock = systemClock{}
	}
	return &service{
		periods: periods,
		source:  src,
		clock:   clock,
	}
}

func (s *service) Periods(ctx context.Context) ([]domain.PeriodConfig, error) {
	return s.periods.GetPeriods(ctx)
}

func (s *service) Snapshot(ctx context.Context, period string, week *int) (domain.KPISnapshot, error) {
	logger := zerolog.Ctx(ctx)

	cfg, err := s.periods.GetPeriod(ctx, period)
	if err != nil {
		return domain.KPISnapshot{}, err
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return domain.KPISnapshot{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	currentWeek := s.currentWeek(week)
	snap, dropped, err := kpi.ComputeFromRows(rows, cfg, currentWeek)
	if err != nil {
		return domain.KPISnapshot{}, err
	}

	logger.Debug().
		Str("period", cfg.Name).
		Int("week", currentWeek).
		Int("rows", len(rows)).
		Int("dropped", dropped).
		Msg("computed snapshot")
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("rows without product or valid price were skipped")
	}

	return snap, nil
}

func (s *service) currentWeek(week *int) int {
	if week != nil {
		return *week
	}
	_, w := s.clock.Now().ISOWeek()
	return w
}
