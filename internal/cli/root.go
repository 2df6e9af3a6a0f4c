package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ordeal/internal/config"
	"github.com/roach88/ordeal/internal/logging"
	"github.com/roach88/ordeal/internal/style"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Color      string // "auto" | "always" | "never"
	LogLevel   string
	HistoryDB  string

	// Resolved once per invocation by resolve.
	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.ValidFormats

// NewRootCommand creates the root command for the ordeal CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ordeal",
		Short: "ordeal - declarative suite runner",
		Long: `Run suites of tests declared in YAML or CUE files.

Suites nest, tests compare an expected value against an actual one, and
parameterized tests fan out into numbered cases. Failures are reported with
a character or structural diff.

Settings come from ordeal.yaml in the working directory (or --config),
ORDEAL_* environment variables, and flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./ordeal.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", style.ColorAuto, "color output (auto|always|never)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.HistoryDB, "history-db", "", "SQLite run history database")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// resolve merges defaults, config file, environment and flags into
// opts.Config and builds the logger. It runs once; later calls are no-ops.
//
// Commands built on their own (without the root) have no persistent flags,
// so the plain RootOptions fields are applied instead.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if o.Config != nil {
		return nil
	}

	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	fields := map[string]struct {
		key   string
		value string
	}{
		"format":     {"format", o.Format},
		"color":      {"color", o.Color},
		"log-level":  {"log.level", o.LogLevel},
		"history-db": {"history.db", o.HistoryDB},
	}
	for flag, f := range fields {
		if cmd.Flags().Lookup(flag) == nil && f.value != "" {
			v.Set(f.key, f.value)
		}
	}
	if o.Verbose && !cmd.Flags().Changed("log-level") {
		v.SetDefault("log.level", "info")
	}

	cfg, err := config.Load(v, o.ConfigFile, ".")
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Config = cfg
	o.Logger = logger
	logger.Debug("configuration resolved",
		"format", cfg.Format,
		"color", cfg.Color,
		"patterns", fmt.Sprint(cfg.Patterns),
	)
	return nil
}

// formatter returns an OutputFormatter for the resolved format.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Config.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}
