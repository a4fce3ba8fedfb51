package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/source"
)

// ReportHandler renders a report, e.g. as a table or as plain text.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

// Env resolves what a command needs from the application config file.
type Env struct {
	ConfigPath *string
	Sources    source.Registry
}

func (e *Env) Config() (*config.Config, error) {
	return config.LoadConfig(*e.ConfigPath)
}

func (e *Env) Periods(cfg *config.Config) (config.PeriodRegistry, error) {
	periods, err := config.NewPeriodRegistry(cfg.PeriodsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	return periods, nil
}

func (e *Env) Source(ctx context.Context, cfg *config.Config) (source.Source, error) {
	src, err := e.Sources.Create(ctx, cfg.Source.Kind, source.Settings{
		Path:   cfg.Source.Path,
		DbPath: cfg.Source.DbPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
	}
	return src, nil
}
