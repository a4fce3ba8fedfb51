package commands

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ComputeCmd struct {
	env      *Env
	clock    dashboard.Clock
	reporter ReportHandler
	period   string
	week     int
}

func NewComputeCmd(env *Env, clock dashboard.Clock, reporter ReportHandler) *cobra.Command {
	cc := &ComputeCmd{env: env, clock: clock, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the KPIs of a period",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.period, "period", "", "Name of the period to compute (see `periods`)")
	cmd.Flags().IntVar(&cc.week, "week", 0, "ISO week to treat as the current week (default is this week)")

	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func (cc *ComputeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := cc.env.Config()
	if err != nil {
		return err
	}
	periods, err := cc.env.Periods(cfg)
	if err != nil {
		return err
	}
	src, err := cc.env.Source(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close source")
		}
	}()

	var week *int
	if cmd.Flags().Changed("week") {
		if cc.week < 1 || cc.week > 53 {
			return fmt.Errorf("invalid week %d: expected an ISO week between 1 and 53", cc.week)
		}
		week = &cc.week
	}

	snap, err := dashboard.NewService(periods, src, cc.clock).Snapshot(ctx, cc.period, week)
	if err != nil {
		return fmt.Errorf("failed to compute period %q: %w", cc.period, err)
	}

	return cc.reporter.Handle(dashboard.BuildReport(snap, cfg.Currency))
}
