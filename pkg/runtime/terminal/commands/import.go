package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/services/ingest"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/imports"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/rows"
	"github.com/de-tools/sales-atlas/pkg/store/sheetcsv"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	env       *Env
	csvPath   string
	batchSize int
	quiet     bool
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the embedded row store with a sheet export",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.csvPath, "csv", "", "Path to the sheet CSV export")
	cmd.Flags().IntVar(&ic.batchSize, "batch-size", 0, "Rows inserted per batch")
	cmd.Flags().BoolVar(&ic.quiet, "quiet", false, "Disable the progress bar")

	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := ic.env.Config()
	if err != nil {
		return err
	}

	sheetRows, err := sheetcsv.ReadFile(ic.csvPath)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Source.DbPath})
	if err != nil {
		return fmt.Errorf("failed to open DuckDB instance: %w", err)
	}
	defer db.Close()

	rowStore, err := rows.NewStore(db)
	if err != nil {
		return err
	}

	runStore, err := imports.NewStore(db)
	if err != nil {
		return err
	}

	importCfg := ingest.Config{BatchSize: ic.batchSize}
	if !ic.quiet {
		importCfg.Progress = cmd.ErrOrStderr()
	}
	res, err := ingest.NewImporter(db, rowStore, runStore, importCfg).Import(ctx, ic.csvPath, sheetRows)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into %s (run %d, replaced %d)\n",
		res.Imported, cfg.Source.DbPath, res.RunID, res.Replaced)
	return nil
}
