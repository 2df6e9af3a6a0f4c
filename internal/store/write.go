package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/ordeal/internal/canon"
	"github.com/roach88/ordeal/internal/ir"
)

// Run is one recorded execution.
type Run struct {
	ID            string
	Seq           int64
	Root          string
	EngineVersion string
	Summary       ir.Summary
}

// WriteRun records a run and its summary entries in one transaction.
// An empty ID is filled from the store's generator; Seq is always assigned
// by the store as one past the highest recorded seq.
func (s *Store) WriteRun(ctx context.Context, run *Run) error {
	warnings, err := marshalWarnings(run.Summary.Warnings)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return fmt.Errorf("write run: next seq: %w", err)
	}

	id := run.ID
	if id == "" {
		id = s.idGen.Generate()
	}
	if run.EngineVersion == "" {
		run.EngineVersion = ir.EngineVersion
	}

	sum := run.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, root, engine_version, total, passed, failed, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, seq, run.Root, run.EngineVersion, sum.Total, sum.Passed, sum.Failed, warnings)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	for i, entry := range sum.Entries {
		if err := writeEntry(ctx, tx, id, int64(i+1), entry); err != nil {
			return fmt.Errorf("write run: entry %q: %w", entry.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}

	run.ID = id
	run.Seq = seq
	return nil
}

func writeEntry(ctx context.Context, tx *sql.Tx, runID string, seq int64, entry ir.SummaryEntry) error {
	res := entry.Result
	_, err := tx.ExecContext(ctx, `
		INSERT INTO entries
		(run_id, seq, test_id, title, passed, expected, actual, format_mode, parameterized, passed_cases, total_cases)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		seq,
		int64(entry.TestID),
		entry.Title,
		res.Passed,
		res.Expected,
		res.Actual,
		string(res.FormatMode),
		entry.Parameterized,
		nullInt(res.PassedCases),
		nullInt(res.TotalCases),
	)
	if err != nil {
		return err
	}

	for _, cf := range entry.CaseFailures {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO case_failures
			(run_id, entry_seq, case_id, case_no, expected, actual, format_mode)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			runID,
			seq,
			int64(cf.ID),
			cf.CaseNo,
			cf.Result.Expected,
			cf.Result.Actual,
			string(cf.Result.FormatMode),
		)
		if err != nil {
			return fmt.Errorf("case %d: %w", cf.CaseNo, err)
		}
	}
	return nil
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

// marshalWarnings converts warnings to canonical JSON TEXT for storage.
func marshalWarnings(warnings []string) (string, error) {
	if warnings == nil {
		warnings = []string{}
	}
	data, err := canon.Marshal(warnings)
	if err != nil {
		return "", fmt.Errorf("marshal warnings: %w", err)
	}
	return string(data), nil
}
