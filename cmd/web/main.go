package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the KPI snapshot API for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "sales-atlas.yaml",
		"Path to the application config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	periods, err := config.NewPeriodRegistry(cfg.PeriodsFile)
	if err != nil {
		return fmt.Errorf("failed to create period registry: %w", err)
	}

	src, err := source.DefaultRegistry().Create(ctx, cfg.Source.Kind, source.Settings{
		Path:   cfg.Source.Path,
		DbPath: cfg.Source.DbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
	}
	defer src.Close()

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	if err := logPeriods(ctx, periods); err != nil {
		return fmt.Errorf("failed to load periods from %s: %w", cfg.PeriodsFile, err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		return fmt.Errorf("missing SERVER_HOST or SERVER_PORT in the environment or .env file")
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Dashboard: dashboard.NewService(periods, src, nil),
			Logger:    logger,
		},
	})

	return api.Start()
}

// logPeriods lists the configured periods and fails when any of them is invalid,
// so the API never starts with a half-loaded registry.
func logPeriods(ctx context.Context, periods config.PeriodRegistry) error {
	logger := zerolog.Ctx(ctx)

	configured, err := periods.GetPeriods(ctx)
	if err != nil {
		return err
	}
	logger.Info().Msgf("Found the following periods:")
	for _, p := range configured {
		logger.Info().Msgf("Name: `%s`, Weeks: %d-%d %d", p.Name, p.StartWeek, p.EndWeek, p.Year)
	}
	return nil
}
