package domain

import "github.com/shopspring/decimal"

type WeekAmount struct {
	Week   int
	Amount decimal.Decimal
}

// WeeklySeries holds one entry per week of a period, in week order.
type WeeklySeries []WeekAmount

func (s WeeklySeries) Amount(week int) decimal.Decimal {
	for _, wa := range s {
		if wa.Week == week {
			return wa.Amount
		}
	}
	return decimal.Zero
}

func (s WeeklySeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, wa := range s {
		total = total.Add(wa.Amount)
	}
	return total
}

func (s WeeklySeries) AsMap() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(s))
	for _, wa := range s {
		out[wa.Week] = wa.Amount
	}
	return out
}

type ProductTotal struct {
	Name        string
	TotalAmount decimal.Decimal
	Count       int
}

type KPISnapshot struct {
	Period PeriodConfig

	WeeklySold     WeeklySeries
	WeeklyOffered  WeeklySeries
	WeeklyRejected WeeklySeries

	TotalSoldAmount decimal.Decimal
	SoldCount       int
	GoalAmount      decimal.Decimal
	GoalPct         float64

	HitRatePct    float64
	ApprovedCount int
	RejectedCount int
	PendingCount  int
	UnknownCount  int

	OffersSentCount  int
	OffersSentAmount decimal.Decimal

	TopProducts []ProductTotal

	CurrentWeek           int
	CurrentWeekInPeriod   bool
	RemainingWeeks        int
	RemainingAmount       decimal.Decimal
	RemainingWeeklyTarget decimal.Decimal
}
