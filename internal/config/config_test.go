package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/fixture"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ordeal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, fixture.DefaultPatterns, cfg.Patterns)
	assert.Equal(t, fixture.DefaultIgnore, cfg.Ignore)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, diff.AlgorithmPositional, cfg.DiffAlgorithm())
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 0, cfg.Workers)
	assert.Empty(t, cfg.History.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_FileInDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
patterns: ["checks/**/*.yaml"]
color: never
diff:
  algorithm: myers
width: 120
history:
  db: runs.db
`)

	cfg, err := Load(New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"checks/**/*.yaml"}, cfg.Patterns)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, diff.AlgorithmMyers, cfg.DiffAlgorithm())
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, "runs.db", cfg.History.DB)
	assert.Equal(t, fixture.DefaultIgnore, cfg.Ignore, "unset keys keep defaults")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "width: 120\n")
	t.Setenv("ORDEAL_WIDTH", "40")
	t.Setenv("ORDEAL_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ORDEAL_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "text", "")
	fs.String("color", "auto", "")
	require.NoError(t, fs.Parse([]string{"--color", "always"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "always", cfg.Color, "explicit flag wins")
	assert.Equal(t, "json", cfg.Format, "unset flag does not shadow env")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
color: rainbow
diff:
  algorithm: patience
width: -1
workers: 1000
log:
  level: loud
format: xml
`)

	_, err := Load(New(), "", dir)
	require.Error(t, err)

	for _, key := range []string{"color", "diff.algorithm", "width", "workers", "log.level", "format"} {
		assert.Contains(t, err.Error(), key+":")
	}
}

func TestValidate_EmptyPatterns(t *testing.T) {
	cfg := &Config{Color: "auto", Log: LogConfig{Level: "warn"}, Format: "text"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patterns")
}
