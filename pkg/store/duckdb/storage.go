package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SheetRowsSequence = `
	CREATE SEQUENCE IF NOT EXISTS sheet_rows_seq START 1;
`

const SheetRowsSchema = `
	CREATE TABLE IF NOT EXISTS sheet_rows (
		id BIGINT PRIMARY KEY DEFAULT nextval('sheet_rows_seq'),
		product VARCHAR,
		price VARCHAR,
		status VARCHAR,
		event_date VARCHAR,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ImportRunsSequence = `
	CREATE SEQUENCE IF NOT EXISTS import_runs_seq START 1;
`

const ImportRunsSchema = `
	CREATE TABLE IF NOT EXISTS import_runs (
		id BIGINT PRIMARY KEY DEFAULT nextval('import_runs_seq'),
		source VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		rows_imported BIGINT NOT NULL DEFAULT 0,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		error VARCHAR
	);
`

var bootQueries = []string{
	SheetRowsSequence,
	SheetRowsSchema,
	ImportRunsSequence,
	ImportRunsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the embedded database and runs the boot DDL on every
// new connection.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
