package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfigIsValid(t *testing.T) {
	config := NewDefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, "$(ROOT)", config.Parser.Placeholder)
	assert.Equal(t, "text", config.Report.Format)
	assert.Equal(t, "./data", config.Storage.Badger.Path)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	t.Chdir(t.TempDir())

	base := writeConfig(t, "base.toml", `
[parser]
anonymize_root = 'C:\work'
suffix_cache_size = 128

[report]
format = "markdown"
`)
	override := writeConfig(t, "override.toml", `
[report]
format = "yaml"

[logging]
level = "debug"
`)

	config, err := LoadFromFiles(base, "", override)
	require.NoError(t, err)

	assert.Equal(t, `C:\work`, config.Parser.AnonymizeRoot)
	assert.Equal(t, 128, config.Parser.SuffixCacheSize)
	assert.Equal(t, "yaml", config.Report.Format)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "$(ROOT)", config.Parser.Placeholder, "defaults survive")
}

func TestLoadFromFilesErrors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := writeConfig(t, "bad.toml", "[parser\n")
	_, err = LoadFromFiles(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BUILDLOG_PARSER_ANONYMIZE_ROOT", "/srv/build")
	t.Setenv("BUILDLOG_PARSER_SUFFIX_CACHE_SIZE", "64")
	t.Setenv("BUILDLOG_STORAGE_BADGER_PATH", "/tmp/runs")
	t.Setenv("BUILDLOG_STORAGE_BADGER_RESET_ON_STARTUP", "true")
	t.Setenv("BUILDLOG_LOG_OUTPUT", "stdout, file")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "/srv/build", config.Parser.AnonymizeRoot)
	assert.Equal(t, 64, config.Parser.SuffixCacheSize)
	assert.Equal(t, "/tmp/runs", config.Storage.Badger.Path)
	assert.True(t, config.Storage.Badger.ResetOnStartup)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
}

func TestDotEnvLoaded(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BUILDLOG_REPORT_FORMAT=html\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BUILDLOG_REPORT_FORMAT") })

	config, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "html", config.Report.Format)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, FlagOverrides{AnonymizeRoot: "/ws", Format: "json", DataPath: "/db"})

	assert.Equal(t, "/ws", config.Parser.AnonymizeRoot)
	assert.Equal(t, "json", config.Report.Format)
	assert.Equal(t, "/db", config.Storage.Badger.Path)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Report.Format = "pdf" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }},
		{"unknown output", func(c *Config) { c.Logging.Output = []string{"syslog"} }},
		{"empty placeholder", func(c *Config) { c.Parser.Placeholder = "" }},
		{"zero cache", func(c *Config) { c.Parser.SuffixCacheSize = 0 }},
		{"empty storage path", func(c *Config) { c.Storage.Badger.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)
			assert.ErrorContains(t, config.Validate(), "invalid configuration")
		})
	}
}
