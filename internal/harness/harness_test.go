package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordeal/internal/engine"
	"github.com/roach88/ordeal/internal/ir"
)

func TestRunWithGolden_Greet(t *testing.T) {
	result := RunWithGolden(t, "testdata/greet.test.yaml")

	assert.False(t, result.Passed())
	assert.Nil(t, result.Violation)
	assert.Empty(t, result.ExitCodes)
	assert.Equal(t, 2, result.Summary.Total)
	assert.Equal(t, []string{
		"suite greet @0",
		"start says hello",
		"finish says hello true",
		"start counts",
		"progress counts 1/2",
		"progress counts 2/2",
		"finish counts false",
	}, result.Events)
}

func TestRunWithGolden_Objects(t *testing.T) {
	result := RunWithGolden(t, "testdata/objects.test.yaml")

	require.Len(t, result.Summary.Entries, 3)
	assert.Equal(t, ir.FormatObj, result.Summary.Entries[0].Result.FormatMode)
	assert.Equal(t, ir.Failure("object", "array", ir.FormatNone), result.Summary.Entries[1].Result)
	assert.Equal(t, "errors > explodes", result.Summary.Entries[2].Title)
}

func TestRun_Violation(t *testing.T) {
	result, err := Run("testdata/mixed.test.yaml")
	require.NoError(t, err)

	require.NotNil(t, result.Violation)
	assert.Equal(t, engine.ViolationMixedCaseBody, result.Violation.Violation)
	assert.Equal(t, []int{engine.ExitMixedCaseBody}, result.ExitCodes)
	assert.False(t, result.Passed())
	assert.Empty(t, result.Events, "the violation stops registration before the run")
	assert.Zero(t, result.Summary.Total)
}

func TestRun_LoadError(t *testing.T) {
	_, err := Run("testdata/missing.test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.test.yaml")
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run("testdata/greet.test.yaml")
	require.NoError(t, err)
	second, err := Run("testdata/greet.test.yaml")
	require.NoError(t, err)

	assert.Equal(t, first.Transcript, second.Transcript)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestGoldenName(t *testing.T) {
	assert.Equal(t, "greet.test", GoldenName("testdata/greet.test.yaml"))
	assert.Equal(t, "math.spec", GoldenName("/abs/math.spec.cue"))
}
