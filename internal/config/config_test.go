package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "sales_reports.zip", cfg.Report.ArchiveName)
	assert.Equal(t, int64(10485760), cfg.Report.MaxUploadBytes)
	assert.Empty(t, cfg.Report.CurrencySymbol)
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SALES_SERVER_PORT", "9090")
	t.Setenv("SALES_LOGGING_LEVEL", "debug")
	t.Setenv("SALES_REPORT_CURRENCY_SYMBOL", "R$")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "R$", cfg.Report.CurrencySymbol)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 3000
logging:
  level: warn
report:
  archive_name: relatorios.zip
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "relatorios.zip", cfg.Report.ArchiveName)
	// Untouched fields keep defaults.
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"invalid log level", map[string]string{"SALES_LOGGING_LEVEL": "loud"}},
		{"invalid log format", map[string]string{"SALES_LOGGING_FORMAT": "xml"}},
		{"port out of range", map[string]string{"SALES_SERVER_PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
