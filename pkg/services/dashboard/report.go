package dashboard

import (
	"fmt"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "kr."

// BuildReport lays a snapshot out as report sections for the console reporters.
func BuildReport(snap domain.KPISnapshot, currency string) *domain.Report {
	if currency == "" {
		currency = DefaultCurrency
	}
	money := func(d decimal.Decimal) string {
		return d.StringFixed(2)
	}
	pct := func(f float64) string {
		return fmt.Sprintf("%.1f%%", f)
	}

	weekly := domain.ReportSection{
		Title: "Weekly Revenue",
		Details: lo.Map(snap.WeeklySold, func(wa domain.WeekAmount, _ int) domain.ReportDetail {
			return domain.ReportDetail{
				Name:  fmt.Sprintf("Week %d", wa.Week),
				Value: money(wa.Amount),
				Unit:  currency,
				Description: fmt.Sprintf("offered %s, rejected %s",
					money(snap.WeeklyOffered.Amount(wa.Week)),
					money(snap.WeeklyRejected.Amount(wa.Week))),
			}
		}),
	}

	goal := domain.ReportSection{
		Title: "Goal",
		Summary: map[string]string{
			"Sold":         fmt.Sprintf("%s %s (%d)", money(snap.TotalSoldAmount), currency, snap.SoldCount),
			"Goal":         fmt.Sprintf("%s %s", money(snap.GoalAmount), currency),
			"Goal Reached": pct(snap.GoalPct * 100),
		},
	}

	hitRate := domain.ReportSection{
		Title: "Hit-rate",
		Summary: map[string]string{
			"Hit-rate": pct(snap.HitRatePct),
		},
		Details: []domain.ReportDetail{
			{Name: "Approved", Value: strconv.Itoa(snap.ApprovedCount), Unit: "offers"},
			{Name: "Rejected", Value: strconv.Itoa(snap.RejectedCount), Unit: "offers"},
			{Name: "Pending", Value: strconv.Itoa(snap.PendingCount), Unit: "offers"},
			{Name: "Unknown", Value: strconv.Itoa(snap.UnknownCount), Unit: "offers", Description: "unrecognised status"},
		},
	}

	offers := domain.ReportSection{
		Title: "Offers Sent",
		Summary: map[string]string{
			"Offers": strconv.Itoa(snap.OffersSentCount),
			"Amount": fmt.Sprintf("%s %s", money(snap.OffersSentAmount), currency),
		},
	}

	top := domain.ReportSection{
		Title: "Top Products",
		Details: lo.Map(snap.TopProducts, func(p domain.ProductTotal, i int) domain.ReportDetail {
			return domain.ReportDetail{
				Name:        fmt.Sprintf("%d. %s", i+1, p.Name),
				Value:       money(p.TotalAmount),
				Unit:        currency,
				Description: fmt.Sprintf("%d sold", p.Count),
			}
		}),
	}

	pacing := domain.ReportSection{
		Title: "Pacing",
		Summary: map[string]string{
			"Remaining Weeks":  strconv.Itoa(snap.RemainingWeeks),
			"Remaining Amount": fmt.Sprintf("%s %s", money(snap.RemainingAmount), currency),
			"Weekly Target":    fmt.Sprintf("%s %s", money(snap.RemainingWeeklyTarget), currency),
		},
	}
	if !snap.CurrentWeekInPeriod {
		pacing.Summary["Note"] = fmt.Sprintf("week %d is outside the period", snap.CurrentWeek)
	}

	return &domain.Report{
		Title: fmt.Sprintf("Sales KPIs: %s", snap.Period.Name),
		Period: domain.ReportPeriod{
			Year:        snap.Period.Year,
			StartWeek:   snap.Period.StartWeek,
			EndWeek:     snap.Period.EndWeek,
			CurrentWeek: snap.CurrentWeek,
		},
		Sections: []domain.ReportSection{weekly, goal, hitRate, offers, top, pacing},
		Total:    money(snap.TotalSoldAmount),
		Goal:     money(snap.GoalAmount),
		Currency: currency,
	}
}
