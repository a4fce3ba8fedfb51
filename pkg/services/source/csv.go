package source

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/store/sheetcsv"
	"github.com/rs/zerolog"
)

const KindCSV = "csv"

type csvSource struct {
	path string
}

// NewCSVSource reads a sheet export from disk on every Rows call.
func NewCSVSource(_ context.Context, settings Settings) (Source, error) {
	if settings.Path == "" {
		return nil, fmt.Errorf("csv source requires a path")
	}
	return &csvSource{path: settings.Path}, nil
}

func (s *csvSource) Rows(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := sheetcsv.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("rows", len(rows)).Msg("read csv export")
	return adapters.MapStoreSheetRowsToDomainRawRows(rows), nil
}

func (s *csvSource) Close() error {
	return nil
}
