package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/rows"
)

const KindDuckDB = "duckdb"

type duckdbSource struct {
	db    *sql.DB
	store rows.Store
}

// NewDuckDBSource reads rows previously imported into the embedded store.
func NewDuckDBSource(_ context.Context, settings Settings) (Source, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("duckdb source requires a db path")
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.DbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB instance: %w", err)
	}
	store, err := rows.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &duckdbSource{db: db, store: store}, nil
}

// NewStoreSource wraps an already opened row store. Close is then a no-op.
func NewStoreSource(store rows.Store) Source {
	return &duckdbSource{store: store}
}

func (s *duckdbSource) Rows(ctx context.Context) ([]domain.RawRow, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreSheetRowsToDomainRawRows(stored), nil
}

func (s *duckdbSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
