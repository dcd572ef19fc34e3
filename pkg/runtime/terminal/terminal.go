package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/procurement-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/procurement-atlas/pkg/services/config"
	"github.com/de-tools/procurement-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logs    io.Writer
	rootCmd *cobra.Command

	configPath   string
	profilesPath string
	logLevel     string
}

// Options contain configuration for the CLI
type Options struct {
	// Sources opens profiles; nil means the built-in source types
	Sources source.Registry
	Output  io.Writer
	// Logs receives structured logs (default: stderr)
	Logs io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		env:  &commands.Env{Sources: opts.Sources},
		logs: opts.Logs,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Run executes the CLI with explicit arguments.
func (cli *CLI) Run(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "procurement",
		Short:             "Procurement analytics and reporting tool",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the application config file")
	cmd.PersistentFlags().StringVar(&cli.profilesPath, "profiles", "", "Path to the profiles file (default is $HOME/.procurementcfg)")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewImportCmd(cli.env))
	cmd.AddCommand(commands.NewDatasetsCmd(cli.env))
	cmd.AddCommand(commands.NewProfilesCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	if cli.profilesPath != "" {
		cfg.ProfilesPath = cli.profilesPath
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cli.env.Sources == nil {
		cli.env.Sources = source.NewDefaultRegistry(cfg.Storage.DbPath)
	}
	cli.env.Config = cfg

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logs}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}
