package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "sales-atlas.yaml"

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	clock   dashboard.Clock
	output  io.Writer
	errOut  io.Writer
	rootCmd *cobra.Command

	configPath string
	format     string
	verbose    bool
}

// Options contain configuration for the CLI
type Options struct {
	Sources source.Registry
	Clock   dashboard.Clock
	Output  io.Writer
	ErrOut  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Sources == nil {
		opts.Sources = source.DefaultRegistry()
	}

	cli := &CLI{
		clock:  opts.Clock,
		output: opts.Output,
		errOut: opts.ErrOut,
	}
	cli.env = &commands.Env{ConfigPath: &cli.configPath, Sources: opts.Sources}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "sales-atlas",
		Short:             "Sales and offer KPIs per reporting period",
		SilenceUsage:      true,
		PersistentPreRunE: cli.bindLogger,
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errOut)

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", defaultConfigPath,
		"Path to the application config file")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	compute := commands.NewComputeCmd(cli.env, cli.clock, reportHandler{cli: cli})
	compute.Flags().StringVar(&cli.format, "format", "table", "Report format: table or text")

	cmd.AddCommand(commands.NewPeriodsCmd(cli.env))
	cmd.AddCommand(compute)
	cmd.AddCommand(commands.NewImportCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))

	return cmd
}

func (cli *CLI) bindLogger(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if cli.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.errOut}).
		Level(level).
		With().
		Timestamp().
		Str("command", cmd.Name()).
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// reportHandler picks the reporter once the --format flag has been parsed.
type reportHandler struct {
	cli *CLI
}

func (h reportHandler) Handle(report *domain.Report) error {
	switch h.cli.format {
	case "table", "":
		return export.NewReporter(h.cli.output).Handle(report)
	case "text":
		return NewReporter(h.cli.output).Handle(report)
	default:
		return fmt.Errorf("unsupported format %q, expected table or text", h.cli.format)
	}
}
