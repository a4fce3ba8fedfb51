package domain

import "github.com/shopspring/decimal"

// TotalsScope selects which records count toward totals-to-date.
type TotalsScope string

const (
	// TotalsScopePeriod counts records in the configured year and week range.
	TotalsScopePeriod TotalsScope = "period"
	// TotalsScopeYear counts every record of the configured year.
	TotalsScopeYear TotalsScope = "year"
	// TotalsScopeAll counts every valid record, dated or not.
	TotalsScopeAll TotalsScope = "all"
)

type PeriodConfig struct {
	Name          string
	StartWeek     int `validate:"min=1,max=53"`
	EndWeek       int `validate:"min=1,max=53,gtefield=StartWeek"`
	Year          int `validate:"gt=0"`
	GoalAmount    decimal.Decimal
	KnownProducts []string
	TotalsScope   TotalsScope `validate:"omitempty,oneof=period year all"`
	// CountUnknownInHitRate adds records with an unrecognised status to the
	// hit-rate denominator.
	CountUnknownInHitRate bool
	// CountUnknownInOffersSent counts every valid row as a sent offer, whatever
	// its status.
	CountUnknownInOffersSent bool
}

// Weeks returns every week of the period in ascending order.
func (p PeriodConfig) Weeks() []int {
	if p.EndWeek < p.StartWeek {
		return nil
	}
	weeks := make([]int, 0, p.EndWeek-p.StartWeek+1)
	for w := p.StartWeek; w <= p.EndWeek; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

func (p PeriodConfig) ContainsWeek(week int) bool {
	return week >= p.StartWeek && week <= p.EndWeek
}
