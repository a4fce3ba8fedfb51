package rows

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store keeps the raw sheet rows imported from an export. Write operations join
// the transaction carried by ctx (see duckdb.WithTransaction) when there is one.
type Store interface {
	Add(ctx context.Context, rows []store.SheetRow) error
	List(ctx context.Context) ([]store.SheetRow, error)
	Count(ctx context.Context) (int64, error)
	Truncate(ctx context.Context) error
}

type rowStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &rowStore{db: db}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *rowStore) conn(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *rowStore) Add(ctx context.Context, rows []store.SheetRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO sheet_rows (product, price, status, event_date, imported_at)
		VALUES (?, ?, ?, ?, ?)`

	stmt, err := s.conn(ctx).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, row := range rows {
		importedAt := row.ImportedAt
		if importedAt.IsZero() {
			importedAt = now
		}
		_, err = stmt.ExecContext(ctx, row.Product, row.Price, row.Status, row.EventDate, importedAt)
		if err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	return nil
}

func (s *rowStore) List(ctx context.Context) ([]store.SheetRow, error) {
	logger := zerolog.Ctx(ctx)
	query := `
		SELECT id, product, price, status, event_date, imported_at
		FROM sheet_rows
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sheet rows: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close sheet rows")
		}
	}(rows)

	return scanSheetRows(rows)
}

func (s *rowStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sheet rows: %w", err)
	}
	return total, nil
}

func (s *rowStore) Truncate(ctx context.Context) error {
	if _, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM sheet_rows`); err != nil {
		return fmt.Errorf("truncate sheet rows: %w", err)
	}
	return nil
}

func scanSheetRows(rows *sql.Rows) ([]store.SheetRow, error) {
	records := make([]store.SheetRow, 0)
	for rows.Next() {
		var (
			id                               int64
			product, price, status, eventDay sql.NullString
			importedAt                       time.Time
		)
		if err := rows.Scan(&id, &product, &price, &status, &eventDay, &importedAt); err != nil {
			return nil, err
		}
		records = append(records, store.SheetRow{
			ID:         id,
			Product:    product.String,
			Price:      price.String,
			Status:     status.String,
			EventDate:  eventDay.String,
			ImportedAt: importedAt,
		})
	}
	return records, rows.Err()
}
