package kpi

import (
	"sort"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const topProductsLimit = 3

var hundred = decimal.NewFromInt(100)

// ComputeKPIs builds a fresh snapshot for one period. currentWeek is the ISO
// week the caller considers "now"; it only drives the pacing figures.
func ComputeKPIs(records []domain.Record, cfg domain.PeriodConfig, currentWeek int) (domain.KPISnapshot, error) {
	if err := ValidatePeriodConfig(cfg); err != nil {
		return domain.KPISnapshot{}, err
	}
	if cfg.TotalsScope == "" {
		cfg.TotalsScope = domain.TotalsScopePeriod
	}
	cfg.KnownProducts = append([]string(nil), cfg.KnownProducts...)

	snap := domain.KPISnapshot{
		Period:           cfg,
		WeeklySold:       WeeklyAmounts(records, cfg, domain.StatusSold),
		WeeklyOffered:    WeeklyAmounts(records, cfg, domain.StatusOffered),
		WeeklyRejected:   WeeklyAmounts(records, cfg, domain.StatusRejected),
		TotalSoldAmount:  decimal.Zero,
		GoalAmount:       cfg.GoalAmount,
		OffersSentAmount: decimal.Zero,
		CurrentWeek:      currentWeek,
	}

	var sold []domain.Record
	for _, rec := range records {
		if inTotalsScope(rec, cfg) {
			if rec.Status == domain.StatusSold {
				sold = append(sold, rec)
				snap.TotalSoldAmount = snap.TotalSoldAmount.Add(rec.Price)
			}
			if rec.Status != domain.StatusUnknown || cfg.CountUnknownInOffersSent {
				snap.OffersSentCount++
				snap.OffersSentAmount = snap.OffersSentAmount.Add(rec.Price)
			}
		}

		if !inPeriod(rec, cfg) {
			continue
		}
		switch rec.Status {
		case domain.StatusSold:
			snap.ApprovedCount++
		case domain.StatusRejected:
			snap.RejectedCount++
		case domain.StatusOffered:
			snap.PendingCount++
		default:
			snap.UnknownCount++
		}
	}
	snap.SoldCount = len(sold)

	snap.GoalPct = ratio(snap.TotalSoldAmount, cfg.GoalAmount)

	resolved := snap.ApprovedCount + snap.RejectedCount + snap.PendingCount
	if cfg.CountUnknownInHitRate {
		resolved += snap.UnknownCount
	}
	if resolved > 0 {
		snap.HitRatePct = ratio(decimal.NewFromInt(int64(snap.ApprovedCount)).Mul(hundred), decimal.NewFromInt(int64(resolved)))
	}

	snap.TopProducts = topProducts(sold, cfg.KnownProducts)

	snap.CurrentWeekInPeriod = cfg.ContainsWeek(currentWeek)
	snap.RemainingWeeks = lo.CountBy(cfg.Weeks(), func(w int) bool { return w > currentWeek })
	snap.RemainingAmount = decimal.Max(cfg.GoalAmount.Sub(snap.TotalSoldAmount), decimal.Zero)
	snap.RemainingWeeklyTarget = snap.RemainingAmount
	if snap.RemainingWeeks > 0 {
		snap.RemainingWeeklyTarget = snap.RemainingAmount.Div(decimal.NewFromInt(int64(snap.RemainingWeeks)))
	}

	return snap, nil
}

// ComputeFromRows normalizes raw rows before computing and also returns the
// number of rows that were dropped as incomplete.
func ComputeFromRows(rows []domain.RawRow, cfg domain.PeriodConfig, currentWeek int) (domain.KPISnapshot, int, error) {
	records, dropped := NormalizeAll(rows)
	snap, err := ComputeKPIs(records, cfg, currentWeek)
	return snap, dropped, err
}

func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).InexactFloat64()
}

// topProducts ranks the catalog by sold amount. Catalog products without sales
// stay in the ranking with zero; products outside the catalog never appear.
func topProducts(sold []domain.Record, catalog []string) []domain.ProductTotal {
	byName := lo.GroupBy(sold, func(rec domain.Record) string { return rec.Product })

	ranking := make([]domain.ProductTotal, 0, len(catalog))
	for _, name := range lo.Uniq(catalog) {
		total := domain.ProductTotal{Name: name, TotalAmount: decimal.Zero}
		for _, rec := range byName[name] {
			total.TotalAmount = total.TotalAmount.Add(rec.Price)
			total.Count++
		}
		ranking = append(ranking, total)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalAmount.GreaterThan(ranking[j].TotalAmount)
	})
	if len(ranking) > topProductsLimit {
		ranking = ranking[:topProductsLimit]
	}
	return ranking
}
