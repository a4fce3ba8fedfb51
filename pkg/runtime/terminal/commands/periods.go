package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type PeriodsCmd struct {
	env *Env
}

func NewPeriodsCmd(env *Env) *cobra.Command {
	pc := &PeriodsCmd{env: env}
	return &cobra.Command{
		Use:   "periods",
		Short: "List the configured reporting periods",
		RunE:  pc.run,
	}
}

func (pc *PeriodsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := pc.env.Config()
	if err != nil {
		return err
	}
	registry, err := pc.env.Periods(cfg)
	if err != nil {
		return err
	}
	periods, err := registry.GetPeriods(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(periods) == 0 {
		fmt.Fprintf(out, "No periods found in %s\n", cfg.PeriodsFile)
		return nil
	}
	for _, p := range periods {
		fmt.Fprintf(out, "%-10s weeks %2d-%2d %d  goal %s %s  scope %s  products: %s\n",
			p.Name, p.StartWeek, p.EndWeek, p.Year,
			p.GoalAmount.StringFixed(2), cfg.Currency,
			p.TotalsScope,
			strings.Join(p.KnownProducts, ", "))
	}
	return nil
}
