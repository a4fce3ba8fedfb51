package store

import "time"

// SheetRow is a raw spreadsheet row as persisted in or read from a store.
// Values are kept verbatim; cleaning happens in the KPI normalizer.
type SheetRow struct {
	ID         int64
	Product    string
	Price      string
	Status     string
	EventDate  string
	ImportedAt time.Time
}
