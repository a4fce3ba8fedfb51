package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/samber/lo"
)

func MapDomainPeriodToAPI(period domain.PeriodConfig) api.Period {
	products := period.KnownProducts
	if products == nil {
		products = []string{}
	}
	scope := period.TotalsScope
	if scope == "" {
		scope = domain.TotalsScopePeriod
	}
	return api.Period{
		Name:                     period.Name,
		StartWeek:                period.StartWeek,
		EndWeek:                  period.EndWeek,
		Year:                     period.Year,
		Goal:                     period.GoalAmount,
		Products:                 products,
		TotalsScope:              string(scope),
		CountUnknownInHitRate:    period.CountUnknownInHitRate,
		CountUnknownInOffersSent: period.CountUnknownInOffersSent,
	}
}

func MapDomainPeriodsToAPI(periods []domain.PeriodConfig) []api.Period {
	return lo.Map(periods, func(p domain.PeriodConfig, _ int) api.Period {
		return MapDomainPeriodToAPI(p)
	})
}

func mapWeeklySeries(series domain.WeeklySeries) []api.WeekAmount {
	return lo.Map(series, func(wa domain.WeekAmount, _ int) api.WeekAmount {
		return api.WeekAmount{Week: wa.Week, Amount: wa.Amount}
	})
}

func MapDomainSnapshotToAPI(snap domain.KPISnapshot) api.KPISnapshot {
	return api.KPISnapshot{
		Period: MapDomainPeriodToAPI(snap.Period),
		Weekly: api.Weekly{
			Sold:     mapWeeklySeries(snap.WeeklySold),
			Offered:  mapWeeklySeries(snap.WeeklyOffered),
			Rejected: mapWeeklySeries(snap.WeeklyRejected),
		},
		Goal: api.Goal{
			SoldAmount: snap.TotalSoldAmount,
			SoldCount:  snap.SoldCount,
			Amount:     snap.GoalAmount,
			Pct:        snap.GoalPct,
		},
		HitRate: api.HitRate{
			Pct:      snap.HitRatePct,
			Approved: snap.ApprovedCount,
			Rejected: snap.RejectedCount,
			Pending:  snap.PendingCount,
			Unknown:  snap.UnknownCount,
		},
		OffersSent: api.OffersSent{
			Count:  snap.OffersSentCount,
			Amount: snap.OffersSentAmount,
		},
		TopProducts: lo.Map(snap.TopProducts, func(p domain.ProductTotal, _ int) api.ProductTotal {
			return api.ProductTotal{Name: p.Name, Amount: p.TotalAmount, Count: p.Count}
		}),
		Pacing: api.Pacing{
			CurrentWeek:         snap.CurrentWeek,
			CurrentWeekInPeriod: snap.CurrentWeekInPeriod,
			RemainingWeeks:      snap.RemainingWeeks,
			RemainingAmount:     snap.RemainingAmount,
			WeeklyTarget:        snap.RemainingWeeklyTarget,
		},
	}
}
