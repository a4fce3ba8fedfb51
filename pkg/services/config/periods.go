package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/kpi"
	"github.com/shopspring/decimal"
	"gopkg.in/ini.v1"
)

var ErrPeriodNotFound = errors.New("period not found")

// PeriodRegistry resolves named reporting periods (q2, q3, social, ...).
type PeriodRegistry interface {
	GetPeriods(ctx context.Context) ([]domain.PeriodConfig, error)
	GetPeriod(ctx context.Context, name string) (domain.PeriodConfig, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewPeriodRegistry loads an INI file with one section per period:
//
//	[q2]
//	start_week = 18
//	end_week   = 26
//	year       = 2025
//	goal       = 48000
//	products   = Cookie, Ekstra undersider, SoMe Feed Pro
//	totals_scope = all
//	count_unknown_in_hit_rate = false
//	count_unknown_in_offers_sent = true
func NewPeriodRegistry(path string) (PeriodRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load periods file: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetPeriods(_ context.Context) ([]domain.PeriodConfig, error) {
	var periods []domain.PeriodConfig
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		period, err := parsePeriod(section)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

func (r *iniRegistry) GetPeriod(_ context.Context, name string) (domain.PeriodConfig, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.PeriodConfig{}, fmt.Errorf("%w: %s", ErrPeriodNotFound, name)
	}
	return parsePeriod(section)
}

func parsePeriod(section *ini.Section) (domain.PeriodConfig, error) {
	name := section.Name()
	invalid := func(key string, err error) error {
		return fmt.Errorf("%w %q: key %s: %v", kpi.ErrInvalidPeriodConfig, name, key, err)
	}

	startWeek, err := section.Key("start_week").Int()
	if err != nil {
		return domain.PeriodConfig{}, invalid("start_week", err)
	}
	endWeek, err := section.Key("end_week").Int()
	if err != nil {
		return domain.PeriodConfig{}, invalid("end_week", err)
	}
	year, err := section.Key("year").Int()
	if err != nil {
		return domain.PeriodConfig{}, invalid("year", err)
	}

	goal := decimal.Zero
	if raw := strings.TrimSpace(section.Key("goal").String()); raw != "" {
		goal, err = decimal.NewFromString(raw)
		if err != nil {
			return domain.PeriodConfig{}, invalid("goal", err)
		}
	}

	flag := func(key string) (bool, error) {
		if !section.HasKey(key) {
			return false, nil
		}
		v, err := section.Key(key).Bool()
		if err != nil {
			return false, invalid(key, err)
		}
		return v, nil
	}
	countUnknown, err := flag("count_unknown_in_hit_rate")
	if err != nil {
		return domain.PeriodConfig{}, err
	}
	countUnknownOffers, err := flag("count_unknown_in_offers_sent")
	if err != nil {
		return domain.PeriodConfig{}, err
	}

	period := domain.PeriodConfig{
		Name:                     name,
		StartWeek:                startWeek,
		EndWeek:                  endWeek,
		Year:                     year,
		GoalAmount:               goal,
		KnownProducts:            splitProducts(section.Key("products").String()),
		TotalsScope:              domain.TotalsScope(strings.TrimSpace(section.Key("totals_scope").String())),
		CountUnknownInHitRate:    countUnknown,
		CountUnknownInOffersSent: countUnknownOffers,
	}
	if period.TotalsScope == "" {
		period.TotalsScope = domain.TotalsScopePeriod
	}

	if err := kpi.ValidatePeriodConfig(period); err != nil {
		return domain.PeriodConfig{}, err
	}
	return period, nil
}

func splitProducts(raw string) []string {
	var products []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			products = append(products, p)
		}
	}
	return products
}
