package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/engine"
	"github.com/roach88/ordeal/internal/fixture"
	"github.com/roach88/ordeal/internal/ir"
	"github.com/roach88/ordeal/internal/report"
	"github.com/roach88/ordeal/internal/store"
	"github.com/roach88/ordeal/internal/style"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Width   int
	Workers int
	Diff    string

	// IDGenerator allows overriding the history run id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Discover and run suite files",
		Long: `Discover suite files under path (default ./), register their suites and
run every test depth-first.

Suite files match *.test.yaml, *.spec.yaml, *.test.cue and *.spec.cue by
default; node_modules and .git are skipped. When history.db is configured
the run summary is recorded.

Exit codes:
  0  all tests passed
  1  at least one test failed
  2  path, config or history error
  3  a case was declared outside of a test
  4  a test with cases failed outside of its cases

Example:
  ordeal run ./suites
  ordeal run --format json --history-db runs.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "./"
			if len(args) == 1 {
				root = args[0]
			}
			return runSuites(opts, root, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 80, "truncate titles to this many columns (0 disables)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel file loads (0 uses GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.Diff, "diff", string(diff.AlgorithmPositional), "string diff algorithm (positional|myers)")

	return cmd
}

func runSuites(opts *RunOptions, root string, cmd *cobra.Command) error {
	if err := opts.resolve(cmd); err != nil {
		return err
	}
	cfg := opts.Config
	logger := opts.Logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := checkRoot(root); err != nil {
		return err
	}

	paths, err := fixture.Discover(ctx, root, cfg.Patterns, cfg.Ignore)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to discover suite files", err)
	}
	logger.Info("discovered suite files", "root", root, "count", len(paths))

	files, err := fixture.LoadAll(ctx, paths, cfg.Workers)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite files", err)
	}

	out := cmd.OutOrStdout()
	var (
		reporter engine.Reporter
		jsonOut  *report.JSON
	)
	if cfg.Format == "json" {
		jsonOut = report.NewJSON(out)
		reporter = jsonOut
	} else {
		palette, err := style.NewPalette(out, cfg.Color)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		reporter = report.NewConsole(out,
			report.WithStyler(palette),
			report.WithDiffRenderer(diff.New(palette, diff.WithAlgorithm(cfg.DiffAlgorithm()))),
			report.WithWidth(cfg.Width),
			report.WithLive(isTerminal(out)),
		)
	}

	e := engine.New(
		engine.WithReporter(reporter),
		engine.WithLogger(logger),
		// Usage violations surface as *engine.UsageError panics, converted
		// to exit codes by execute.
		engine.WithExitFunc(func(int) {}),
	)

	sum, err := execute(e, files)
	if err != nil {
		return err
	}
	if jsonOut != nil && jsonOut.Err() != nil {
		return WrapExitError(ExitCommandError, "failed to write summary", jsonOut.Err())
	}

	if cfg.History.DB != "" {
		if err := recordRun(ctx, opts, root, sum); err != nil {
			return err
		}
	}

	if !sum.OK() {
		// The summary already lists the failures.
		return NewExitError(ExitFailure, "")
	}
	return nil
}

// execute registers files and runs the engine, converting usage violations
// into ExitErrors carrying the violation's exit code.
func execute(e *engine.Engine, files []*fixture.File) (sum ir.Summary, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		usage, ok := r.(*engine.UsageError)
		if !ok {
			panic(r)
		}
		err = WrapExitError(usage.Code, "invalid suite", usage)
	}()

	fixture.Register(e, files)
	return e.Run(), nil
}

func recordRun(ctx context.Context, opts *RunOptions, root string, sum ir.Summary) error {
	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}

	st, err := store.Open(opts.Config.History.DB, storeOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.Logger.Error("error closing history database", "error", closeErr)
		}
	}()

	run := &store.Run{Root: root, Summary: sum}
	if err := st.WriteRun(ctx, run); err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	opts.Logger.Info("run recorded", "id", run.ID, "seq", run.Seq)
	return nil
}

// checkRoot verifies root exists and is a directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return NewExitError(ExitCommandError, fmt.Sprintf("Path %s does not exist", root))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("Path %s is not readable", root), err)
	}
	if !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("Path %s is not a directory", root))
	}
	return nil
}
