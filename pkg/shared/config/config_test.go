package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
logger:
  level: debug
report:
  input: exports/issues.json
  output: out/
  format: pdf
  source: ~/src/shop
  strict_counters: true
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, Report{
		Input:          "exports/issues.json",
		Output:         "out/",
		Format:         "pdf",
		Source:         "~/src/shop",
		StrictCounters: true,
	}, cfg.Report)
}

func TestNewConfigEmptyFile(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestNewConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewConfig(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	_, err = NewConfig(dir)
	assert.ErrorContains(t, err, "is a directory, not a file")

	_, err = NewConfig(writeConfig(t, dir, "report:\n  colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg, "absent default file yields empty config")

	writeConfig(t, dir, "report:\n  format: sarif\n")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sarif", cfg.Report.Format)

	_, err = LoadConfig(filepath.Join(dir, "other.yml"))
	assert.ErrorContains(t, err, "failed to load config")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "Nil config", cfg: nil, wantErr: "configuration object is nil"},
		{name: "Empty config", cfg: &Config{}},
		{name: "Known level", cfg: &Config{Logger: Logger{Level: "WARN"}}},
		{name: "Unknown level", cfg: &Config{Logger: Logger{Level: "loud"}}, wantErr: `unknown log level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateReportConfigNormalises(t *testing.T) {
	cfg := &Config{Report: Report{Input: " a.json ", Format: " PDF "}}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "a.json", cfg.Report.Input)
	assert.Equal(t, "pdf", cfg.Report.Format)
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "flag", SetThen("flag", "default"))
	assert.Equal(t, "default", SetThen("", "default"))
	assert.Equal(t, 3, SetThen(0, 3))
	assert.True(t, SetThen(false, true))
}
