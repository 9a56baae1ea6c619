package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "Sheet1", cfg.Sheets.DefaultSheetName)
	assert.Equal(t, 60, cfg.Sheets.DefaultIntervalMinutes)
	assert.Equal(t, 30, cfg.Sheets.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Sheets.LogLimit)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "SERVER_PORT=9090\nDATABASE_DRIVER=sqlite\nSHEETS_TIMEOUT_SECONDS=5\nSTORAGE_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"SERVER_PORT", "DATABASE_DRIVER", "SHEETS_TIMEOUT_SECONDS", "STORAGE_ENABLED"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Sheets.TimeoutSeconds)
	assert.True(t, cfg.Storage.Enabled)
}
