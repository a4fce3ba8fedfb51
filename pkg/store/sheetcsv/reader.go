package sheetcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/gocarina/gocsv"
)

// exportRow mirrors the header of the sheet export. Columns missing from the
// export are left empty rather than failing the read.
type exportRow struct {
	Product   string `csv:"product"`
	Price     string `csv:"price"`
	Status    string `csv:"status"`
	EventDate string `csv:"event_date"`
}

// Read decodes a CSV export. Ragged rows are tolerated because hand-edited
// sheets often are.
func Read(r io.Reader) ([]store.SheetRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var exported []*exportRow
	if err := gocsv.UnmarshalCSV(reader, &exported); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []store.SheetRow{}, nil
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	rows := make([]store.SheetRow, 0, len(exported))
	for _, e := range exported {
		rows = append(rows, store.SheetRow{
			Product:   e.Product,
			Price:     e.Price,
			Status:    e.Status,
			EventDate: e.EventDate,
		})
	}
	return rows, nil
}

func ReadFile(path string) ([]store.SheetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv export: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes rows with the same header Read expects.
func Write(w io.Writer, rows []store.SheetRow) error {
	exported := make([]*exportRow, 0, len(rows))
	for _, row := range rows {
		exported = append(exported, &exportRow{
			Product:   row.Product,
			Price:     row.Price,
			Status:    row.Status,
			EventDate: row.EventDate,
		})
	}
	if err := gocsv.Marshal(exported, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
