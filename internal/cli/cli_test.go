package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordeal/internal/report"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ordeal", cmd.Use)
	assert.Contains(t, cmd.Long, "YAML or CUE")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "validate", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	tests := []struct {
		name string
		def  string
	}{
		{"format", "text"},
		{"config", ""},
		{"color", "auto"},
		{"log-level", "warn"},
		{"history-db", ""},
	}
	for _, tt := range tests {
		flag := cmd.PersistentFlags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.def, flag.DefValue, tt.name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	assert.Equal(t, "80", runCmd.Flags().Lookup("width").DefValue)
	assert.Equal(t, "0", runCmd.Flags().Lookup("workers").DefValue)
	assert.Equal(t, "positional", runCmd.Flags().Lookup("diff").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runCLI(t, "run", "testdata/pass", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRun_Passing(t *testing.T) {
	out, err := runCLI(t, "run", "testdata/pass", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "math\n")
	assert.Contains(t, out, "  ✔ adds\n")
	assert.Contains(t, out, "  ✔ squares (2/2 cases)\n")
	assert.Contains(t, out, "2 tests passed, 2 tests total")
}

func TestRun_FailingText(t *testing.T) {
	out, err := runCLI(t, "run", "testdata/fail", "--color", "never")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, err.Error(), "failures are reported by the summary")

	newGolden(t).Assert(t, "run_fail_text", []byte(out))
}

func TestRun_FailingJSON(t *testing.T) {
	out, err := runCLI(t, "run", "testdata/fail", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Failed)
	require.Len(t, doc.Summary.Entries, 2)
	assert.Equal(t, "strings > greets", doc.Summary.Entries[0].Title)
	assert.Equal(t, `"hallo"`, doc.Summary.Entries[0].Result.Actual)
}

func TestRun_MixedCaseBodyExitCode(t *testing.T) {
	_, err := runCLI(t, "run", "testdata/mixed", "--color", "never")
	require.Error(t, err)
	assert.Equal(t, ExitMixedCaseBody, GetExitCode(err))
	assert.Contains(t, err.Error(), "cases with a failing body")
}

func TestRun_PathErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", "testdata/nope", "Path testdata/nope does not exist"},
		{"file", "testdata/pass/math.test.yaml", "Path testdata/pass/math.test.yaml is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "run", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRun_InvalidSuiteFile(t *testing.T) {
	_, err := runCLI(t, "run", "testdata/invalid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "typo.test.yaml")
}

func TestValidate_Valid(t *testing.T) {
	out, err := runCLI(t, "validate", "testdata/pass")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ 1 suite file(s) valid")
}

func TestValidate_InvalidJSON(t *testing.T) {
	out, err := runCLI(t, "validate", "testdata/invalid", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeLoad, resp.Error.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
}

func TestValidate_InvalidText(t *testing.T) {
	out, err := runCLI(t, "validate", "testdata/invalid")
	require.Error(t, err)
	assert.Contains(t, out, "Validation failed")
	assert.Contains(t, out, filepath.Join("testdata", "invalid", "typo.test.yaml"))
}

func TestHistory_NotConfigured(t *testing.T) {
	_, err := runCLI(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "history database not configured")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := runCLI(t, "history", "--history-db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}

func TestHistory_RecordsRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := runCLI(t, "run", "testdata/pass", "--history-db", db, "--color", "never")
	require.NoError(t, err)
	_, err = runCLI(t, "run", "testdata/fail", "--history-db", db, "--color", "never")
	require.Error(t, err)

	out, err := runCLI(t, "history", "--history-db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)

	newest := resp.Data[0]
	assert.Equal(t, int64(2), newest.Seq)
	assert.Equal(t, "testdata/fail", newest.Root)
	assert.Equal(t, 1, newest.Failed)
	assert.Equal(t, int64(1), resp.Data[1].Seq)
	assert.Equal(t, 0, resp.Data[1].Failed)

	text, err := runCLI(t, "history", "--history-db", db, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, text, "SEQ")
	assert.Contains(t, text, newest.ID)
	assert.NotContains(t, text, resp.Data[1].ID)

	shown, err := runCLI(t, "history", newest.ID, "--history-db", db, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, shown, "FAIL strings > greets")
	assert.Contains(t, shown, "1 test failed, 1 test passed, 2 tests total")
}

func TestHistory_UnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := runCLI(t, "history", "missing-id", "--history-db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found")
}
