package imports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Store keeps the history of import runs.
type Store interface {
	StartRun(ctx context.Context, source string) (*store.ImportRun, error)
	FinishRun(ctx context.Context, id int64, rowsImported int64, runErr error) error
	ListRuns(ctx context.Context, limit int) ([]store.ImportRun, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *defaultStore) StartRun(ctx context.Context, source string) (*store.ImportRun, error) {
	run := &store.ImportRun{
		Source:    source,
		Status:    store.ImportStatusRunning,
		StartedAt: s.now(),
	}

	query := `
		INSERT INTO import_runs (source, status, started_at)
		VALUES (?, ?, ?)
		RETURNING id`
	err := s.db.QueryRowContext(ctx, query, run.Source, string(run.Status), run.StartedAt).Scan(&run.ID)
	if err != nil {
		return nil, fmt.Errorf("insert import run: %w", err)
	}
	return run, nil
}

func (s *defaultStore) FinishRun(ctx context.Context, id int64, rowsImported int64, runErr error) error {
	status := store.ImportStatusCompleted
	var errMsg *string
	if runErr != nil {
		status = store.ImportStatusFailed
		msg := runErr.Error()
		errMsg = &msg
	}

	query := `
		UPDATE import_runs
		SET status = ?, rows_imported = ?, finished_at = ?, error = ?
		WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, string(status), rowsImported, s.now(), errMsg, id)
	if err != nil {
		return fmt.Errorf("update import run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update import run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("import run %d not found", id)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all.
func (s *defaultStore) ListRuns(ctx context.Context, limit int) ([]store.ImportRun, error) {
	logger := zerolog.Ctx(ctx)

	query := `
		SELECT id, source, status, rows_imported, started_at, finished_at, error
		FROM import_runs
		ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query import runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close import runs")
		}
	}(rows)

	runs := make([]store.ImportRun, 0)
	for rows.Next() {
		var (
			run        store.ImportRun
			status     string
			finishedAt sql.NullTime
			errMsg     sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Source, &status, &run.RowsImported, &run.StartedAt, &finishedAt, &errMsg); err != nil {
			return nil, err
		}
		run.Status = store.ImportStatus(status)
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}
		if errMsg.Valid {
			msg := errMsg.String
			run.Error = &msg
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
