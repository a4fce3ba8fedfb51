package kpi

import (
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// WeeklyAmounts sums the price of records with one of the given statuses per
// (week, cfg.Year). Every week of the period is present, zero-filled; records
// outside the week range, from another year or without a date are ignored.
func WeeklyAmounts(records []domain.Record, cfg domain.PeriodConfig, statuses ...domain.Status) domain.WeeklySeries {
	sums := make(map[int]decimal.Decimal)
	for _, rec := range records {
		if !inPeriod(rec, cfg) || !lo.Contains(statuses, rec.Status) {
			continue
		}
		sums[rec.Week] = sums[rec.Week].Add(rec.Price)
	}

	weeks := cfg.Weeks()
	series := make(domain.WeeklySeries, 0, len(weeks))
	for _, w := range weeks {
		amount, ok := sums[w]
		if !ok {
			amount = decimal.Zero
		}
		series = append(series, domain.WeekAmount{Week: w, Amount: amount})
	}
	return series
}

func inPeriod(rec domain.Record, cfg domain.PeriodConfig) bool {
	return rec.HasDate() && rec.Year == cfg.Year && cfg.ContainsWeek(rec.Week)
}

func inTotalsScope(rec domain.Record, cfg domain.PeriodConfig) bool {
	switch cfg.TotalsScope {
	case domain.TotalsScopeAll:
		return true
	case domain.TotalsScopeYear:
		return rec.HasDate() && rec.Year == cfg.Year
	default:
		return inPeriod(rec, cfg)
	}
}
