package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/ordeal/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intp(n int) *int { return &n }

// createTestSummary builds a summary with a passing test, a failing test and
// a parameterized test with one failed case.
func createTestSummary() ir.Summary {
	return ir.NewSummary([]ir.SummaryEntry{
		{TestID: 1, Title: "math > adds", Result: ir.DefaultResult()},
		{TestID: 2, Title: "math > strings", Result: ir.Failure(`"abc"`, `"abd"`, ir.FormatStr)},
		{
			TestID:        3,
			Title:         "math > squares",
			Parameterized: true,
			Result: ir.Result{
				Passed:      false,
				FormatMode:  ir.FormatNone,
				PassedCases: intp(1),
				TotalCases:  intp(2),
			},
			FailedCases: []ir.ID{5},
			CaseFailures: []ir.CaseFailure{
				{ID: 5, CaseNo: 2, Result: ir.Failure("9", "8", ir.FormatStr)},
			},
		},
	}, []string{`test "lonely" is declared outside of any suite and will not run`})
}
