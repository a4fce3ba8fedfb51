package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/imports"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	env   *Env
	limit int
}

func NewHistoryCmd(env *Env) *cobra.Command {
	hc := &HistoryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent imports into the embedded row store",
		RunE:  hc.run,
	}

	cmd.Flags().IntVar(&hc.limit, "limit", 10, "Number of runs to show (0 shows all)")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := hc.env.Config()
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Source.DbPath})
	if err != nil {
		return fmt.Errorf("failed to open DuckDB instance: %w", err)
	}
	defer db.Close()

	runStore, err := imports.NewStore(db)
	if err != nil {
		return err
	}
	runs, err := runStore.ListRuns(ctx, hc.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No imports recorded in %s\n", cfg.Source.DbPath)
		return nil
	}
	for _, run := range runs {
		line := fmt.Sprintf("#%d %s %-9s %6d rows  %s",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.Status, run.RowsImported, run.Source)
		if run.Error != nil {
			line += "  error: " + *run.Error
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
