package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/ordeal/internal/ir"
)

// ErrRunNotFound is returned when a run id is not recorded.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns recorded runs, newest first, without their entries.
// A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, root, engine_version, total, passed, failed, warnings
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a run with its entries in summary order.
// Returns an error wrapping ErrRunNotFound if the id is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, root, engine_version, total, passed, failed, warnings
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}

	entries, err := s.readEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}
	run.Summary.Entries = entries
	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		warnings string
	)
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Root,
		&run.EngineVersion,
		&run.Summary.Total,
		&run.Summary.Passed,
		&run.Summary.Failed,
		&warnings,
	)
	if err != nil {
		return Run{}, err
	}

	if err := json.Unmarshal([]byte(warnings), &run.Summary.Warnings); err != nil {
		return Run{}, fmt.Errorf("unmarshal warnings: %w", err)
	}
	if len(run.Summary.Warnings) == 0 {
		run.Summary.Warnings = nil
	}
	return run, nil
}

func (s *Store) readEntries(ctx context.Context, runID string) ([]ir.SummaryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, test_id, title, passed, expected, actual, format_mode, parameterized, passed_cases, total_cases
		FROM entries
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	type indexed struct {
		seq   int64
		entry ir.SummaryEntry
	}
	var list []indexed
	for rows.Next() {
		var (
			seq                int64
			testID             int64
			e                  ir.SummaryEntry
			mode               string
			passedCases, total sql.NullInt64
		)
		err := rows.Scan(&seq, &testID, &e.Title, &e.Result.Passed, &e.Result.Expected, &e.Result.Actual,
			&mode, &e.Parameterized, &passedCases, &total)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.TestID = ir.ID(testID)
		e.Result.FormatMode = ir.FormatMode(mode)
		e.Result.PassedCases = intPtr(passedCases)
		e.Result.TotalCases = intPtr(total)
		list = append(list, indexed{seq: seq, entry: e})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	rows.Close()

	entries := make([]ir.SummaryEntry, 0, len(list))
	for _, it := range list {
		if it.entry.Parameterized {
			failures, err := s.readCaseFailures(ctx, runID, it.seq)
			if err != nil {
				return nil, err
			}
			it.entry.CaseFailures = failures
			for _, cf := range failures {
				it.entry.FailedCases = append(it.entry.FailedCases, cf.ID)
			}
		}
		entries = append(entries, it.entry)
	}
	return entries, nil
}

func (s *Store) readCaseFailures(ctx context.Context, runID string, entrySeq int64) ([]ir.CaseFailure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT case_id, case_no, expected, actual, format_mode
		FROM case_failures
		WHERE run_id = ? AND entry_seq = ?
		ORDER BY case_no ASC
	`, runID, entrySeq)
	if err != nil {
		return nil, fmt.Errorf("query case failures: %w", err)
	}
	defer rows.Close()

	var failures []ir.CaseFailure
	for rows.Next() {
		var (
			caseID int64
			mode   string
			cf     ir.CaseFailure
		)
		if err := rows.Scan(&caseID, &cf.CaseNo, &cf.Result.Expected, &cf.Result.Actual, &mode); err != nil {
			return nil, fmt.Errorf("scan case failure: %w", err)
		}
		cf.ID = ir.ID(caseID)
		cf.Result.FormatMode = ir.FormatMode(mode)
		failures = append(failures, cf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case failures: %w", err)
	}
	return failures, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
