package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/report"
	"github.com/roach88/ordeal/internal/store"
	"github.com/roach88/ordeal/internal/style"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// HistoryEntry is one row of the run listing.
type HistoryEntry struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	Root          string `json:"root"`
	EngineVersion string `json:"engine_version"`
	Total         int    `json:"total"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs",
		Long: `List runs recorded in the history database, newest first.

With a run id, print that run's summary instead.

Examples:
  ordeal history --history-db runs.db
  ordeal history --history-db runs.db --limit 5
  ordeal history --history-db runs.db 0192f0c4-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(opts, args[0], cmd)
			}
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 lists all)")

	return cmd
}

func openHistory(opts *HistoryOptions, cmd *cobra.Command) (*store.Store, *OutputFormatter, error) {
	if err := opts.resolve(cmd); err != nil {
		return nil, nil, err
	}
	formatter := opts.formatter(cmd)

	path := opts.Config.History.DB
	if path == "" {
		msg := "history database not configured (set history.db or --history-db)"
		_ = formatter.Error(ErrCodeHistory, msg, nil)
		return nil, nil, NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeHistory, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, formatter, nil
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	st, formatter, err := openHistory(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	entries := make([]HistoryEntry, 0, len(runs))
	for _, r := range runs {
		entries = append(entries, HistoryEntry{
			ID:            r.ID,
			Seq:           r.Seq,
			Root:          r.Root,
			EngineVersion: r.EngineVersion,
			Total:         r.Summary.Total,
			Passed:        r.Summary.Passed,
			Failed:        r.Summary.Failed,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tPASSED\tFAILED\tROOT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d/%d\t%d\t%s\n", e.Seq, e.ID, e.Passed, e.Total, e.Failed, e.Root)
	}
	return tw.Flush()
}

func runHistoryShow(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	st, formatter, err := openHistory(opts, cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.ReadRun(context.Background(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run %s not found", id), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if formatter.Format == "json" {
		doc := report.NewDocument(run.Summary)
		doc.EngineVersion = run.EngineVersion
		return formatter.Success(doc)
	}

	palette, err := style.NewPalette(formatter.Writer, opts.Config.Color)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	fmt.Fprintf(formatter.Writer, "Run %s (#%d) of %s\n", run.ID, run.Seq, run.Root)
	report.WriteSummary(formatter.Writer, run.Summary, palette,
		diff.New(palette, diff.WithAlgorithm(opts.Config.DiffAlgorithm())))
	return nil
}
