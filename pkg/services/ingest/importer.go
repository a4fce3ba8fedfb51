package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/imports"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/rows"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
)

const defaultBatchSize = 500

type Config struct {
	BatchSize int
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

type Result struct {
	RunID    int64
	Imported int
	Replaced int64
}

// Importer replaces the stored sheet rows with a fresh export in one
// transaction, so readers never observe a half-imported sheet.
type Importer struct {
	db     *sql.DB
	store  rows.Store
	runs   imports.Store
	config Config
}

// NewImporter wires an importer. runs may be nil, in which case no import
// history is kept.
func NewImporter(db *sql.DB, store rows.Store, runs imports.Store, config Config) *Importer {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}
	return &Importer{
		db:     db,
		store:  store,
		runs:   runs,
		config: config,
	}
}

// Import replaces the stored rows with sheetRows. source labels the run in the
// import history, usually the path of the export.
func (i *Importer) Import(ctx context.Context, source string, sheetRows []store.SheetRow) (Result, error) {
	logger := zerolog.Ctx(ctx)

	var runID int64
	if i.runs != nil {
		run, err := i.runs.StartRun(ctx, source)
		if err != nil {
			return Result{}, err
		}
		runID = run.ID
	}

	previous, err := i.replace(ctx, sheetRows)
	if i.runs != nil {
		imported := int64(len(sheetRows))
		if err != nil {
			imported = 0
		}
		if finishErr := i.runs.FinishRun(ctx, runID, imported, err); finishErr != nil {
			logger.Error().Err(finishErr).Int64("run", runID).Msg("failed to record import run")
		}
	}
	if err != nil {
		return Result{}, fmt.Errorf("import rows: %w", err)
	}

	logger.Info().
		Int64("run", runID).
		Str("source", source).
		Int("imported", len(sheetRows)).
		Int64("replaced", previous).
		Msg("sheet rows imported")

	return Result{RunID: runID, Imported: len(sheetRows), Replaced: previous}, nil
}

func (i *Importer) replace(ctx context.Context, sheetRows []store.SheetRow) (int64, error) {
	previous, err := i.store.Count(ctx)
	if err != nil {
		return 0, err
	}

	bar := i.newBar(len(sheetRows))
	err = duckdb.RunInTx(ctx, i.db, func(ctx context.Context) error {
		if err := i.store.Truncate(ctx); err != nil {
			return err
		}
		for _, batch := range lo.Chunk(sheetRows, i.config.BatchSize) {
			if err := i.store.Add(ctx, batch); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(len(batch))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return previous, nil
}

func (i *Importer) newBar(total int) *progressbar.ProgressBar {
	if i.config.Progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(i.config.Progress),
		progressbar.OptionSetDescription("importing rows"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
