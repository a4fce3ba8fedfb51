package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusSold
	StatusOffered
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusSold:
		return "sold"
	case StatusOffered:
		return "offered"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RawRow is one spreadsheet row exactly as the source returned it.
type RawRow struct {
	Product   string
	Price     string
	Status    string
	EventDate string
}

// Record is a normalized row. Week and Year are the ISO week and ISO week-numbering
// year of EventDate and are zero when the date could not be parsed.
type Record struct {
	Product   string
	Price     decimal.Decimal
	Status    Status
	EventDate *time.Time
	Week      int
	Year      int
}

func (r Record) HasDate() bool {
	return r.EventDate != nil
}
