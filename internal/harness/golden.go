package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenName derives the golden file name for a suite file:
// testdata/greet.test.yaml becomes greet.test.
func GoldenName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RunWithGolden runs the suite file at path and compares its console
// transcript against testdata/golden/{GoldenName(path)}.golden.
//
// Returns the result for further assertions. Load failures fail the test.
func RunWithGolden(t *testing.T, path string, opts ...Option) *Result {
	t.Helper()

	result, err := Run(path, opts...)
	if err != nil {
		t.Fatalf("harness: %v", err)
	}

	AssertGolden(t, GoldenName(path), result)
	return result
}

// AssertGolden compares a result's transcript against a golden file.
// This is useful when you've already run a file and want to compare
// the result without re-running.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, result.Transcript)
}
