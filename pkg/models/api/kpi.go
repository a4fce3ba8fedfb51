package api

import "github.com/shopspring/decimal"

type Period struct {
	Name                     string          `json:"name"`
	StartWeek                int             `json:"start_week"`
	EndWeek                  int             `json:"end_week"`
	Year                     int             `json:"year"`
	Goal                     decimal.Decimal `json:"goal"`
	Products                 []string        `json:"products"`
	TotalsScope              string          `json:"totals_scope"`
	CountUnknownInHitRate    bool            `json:"count_unknown_in_hit_rate"`
	CountUnknownInOffersSent bool            `json:"count_unknown_in_offers_sent"`
}

type WeekAmount struct {
	Week   int             `json:"week"`
	Amount decimal.Decimal `json:"amount"`
}

type Weekly struct {
	Sold     []WeekAmount `json:"sold"`
	Offered  []WeekAmount `json:"offered"`
	Rejected []WeekAmount `json:"rejected"`
}

type Goal struct {
	SoldAmount decimal.Decimal `json:"sold_amount"`
	SoldCount  int             `json:"sold_count"`
	Amount     decimal.Decimal `json:"amount"`
	Pct        float64         `json:"pct"`
}

type HitRate struct {
	Pct      float64 `json:"pct"`
	Approved int     `json:"approved"`
	Rejected int     `json:"rejected"`
	Pending  int     `json:"pending"`
	Unknown  int     `json:"unknown"`
}

type OffersSent struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type ProductTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

type Pacing struct {
	CurrentWeek         int             `json:"current_week"`
	CurrentWeekInPeriod bool            `json:"current_week_in_period"`
	RemainingWeeks      int             `json:"remaining_weeks"`
	RemainingAmount     decimal.Decimal `json:"remaining_amount"`
	WeeklyTarget        decimal.Decimal `json:"weekly_target"`
}

type KPISnapshot struct {
	Period      Period         `json:"period"`
	Weekly      Weekly         `json:"weekly"`
	Goal        Goal           `json:"goal"`
	HitRate     HitRate        `json:"hit_rate"`
	OffersSent  OffersSent     `json:"offers_sent"`
	TopProducts []ProductTotal `json:"top_products"`
	Pacing      Pacing         `json:"pacing"`
}

type Error struct {
	Error string `json:"error"`
}
