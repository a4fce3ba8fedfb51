package kpi

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// statusCorrections fixes known typos after casing has been normalized.
var statusCorrections = map[string]string{
	"Aflsag": "Afslag",
}

var statusLabels = map[string]domain.Status{
	"Godkendt": domain.StatusSold,
	"Solgt":    domain.StatusSold,
	"Sold":     domain.StatusSold,
	"Tilbud":   domain.StatusOffered,
	"Offered":  domain.StatusOffered,
	"Afslag":   domain.StatusRejected,
	"Rejected": domain.StatusRejected,
}

// Day-first layouts are tried before ISO ones so "03/05/2024" is the 3rd of May.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02/01/06",
	"2/1/06",
	"02-01-06",
	"2-1-06",
	"02.01.06",
	"2.1.06",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2.1.2006 15:04:05",
	"2.1.2006 15:04",
	"2006-01-02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var lowerDanish = cases.Lower(language.Danish)

// NormalizeStatusLabel applies the cleanup used on the sheet's status column:
// trim, lower-case, capitalise the first letter and fix known misspellings.
func NormalizeStatusLabel(raw string) string {
	s := lowerDanish.String(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if fixed, ok := statusCorrections[s]; ok {
		return fixed
	}
	return s
}

func ParseStatus(raw string) domain.Status {
	if status, ok := statusLabels[NormalizeStatusLabel(raw)]; ok {
		return status
	}
	return domain.StatusUnknown
}

// ParseDate returns nil for blank or unparseable input.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ParsePrice returns false for blank, non-numeric or negative input.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	return price, true
}

// Normalize turns a raw row into a Record. Rows without a product or a usable
// price are rejected; a bad date or status only degrades the record.
func Normalize(row domain.RawRow) (domain.Record, bool) {
	product := strings.TrimSpace(row.Product)
	if product == "" {
		return domain.Record{}, false
	}
	price, ok := ParsePrice(row.Price)
	if !ok {
		return domain.Record{}, false
	}

	rec := domain.Record{
		Product: product,
		Price:   price,
		Status:  ParseStatus(row.Status),
	}
	if date := ParseDate(row.EventDate); date != nil {
		rec.EventDate = date
		rec.Year, rec.Week = date.ISOWeek()
	}
	return rec, true
}

// NormalizeAll keeps the valid records in input order and returns how many rows
// were dropped.
func NormalizeAll(rows []domain.RawRow) ([]domain.Record, int) {
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		if rec, ok := Normalize(row); ok {
			records = append(records, rec)
		}
	}
	return records, len(rows) - len(records)
}
