package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExportConfigDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewExportConfigHolder(Config{}, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, []float64{10, 10, 10, 10}, cfg.Margins)
	assert.Equal(t, 3.0, cfg.Scale)
	assert.Equal(t, "jpeg", cfg.ImageType)
	assert.Equal(t, 1.0, cfg.ImageQuality)
	assert.Equal(t, "a4", cfg.PageFormat)
	assert.Equal(t, "portrait", cfg.Orientation)
	assert.Equal(t, "mm", cfg.Unit)
}

func TestExportConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yml")
	content := []byte(`export:
  margins: [5, 6, 7, 8]
  scale: 2
  imageType: PNG
  imageQuality: 0.8
  orientation: landscape
  images:
    - logo.png
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	holder, err := NewExportConfigHolder(Config{ExportConfigPath: path}, zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, []float64{5, 6, 7, 8}, cfg.Margins)
	assert.Equal(t, 2.0, cfg.Scale)
	assert.Equal(t, "png", cfg.ImageType)
	assert.Equal(t, 0.8, cfg.ImageQuality)
	assert.Equal(t, "landscape", cfg.Orientation)
	assert.Equal(t, "a4", cfg.PageFormat)
	assert.Equal(t, []string{"logo.png"}, cfg.Images)
}

func TestExportConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  scale: 0\n"), 0o600))

	_, err := NewExportConfigHolder(Config{ExportConfigPath: path}, zap.NewNop())
	assert.Error(t, err)
}

func TestValidateExportConfig(t *testing.T) {
	cfg := DefaultExportConfig()
	require.NoError(t, validateExportConfig(cfg))

	bad := cfg
	bad.Margins = []float64{1, 2}
	assert.Error(t, validateExportConfig(bad))

	bad = cfg
	bad.ImageQuality = 1.5
	assert.Error(t, validateExportConfig(bad))

	bad = cfg
	bad.Unit = "pt"
	assert.Error(t, validateExportConfig(bad))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"COUNTER_BACKEND", "DATABASE_TYPE", "HTTP_ADDR", "SNOWFLAKE_NODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, CounterBackendDatabase, cfg.CounterBackend)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int64(1), cfg.SnowflakeNode)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("COUNTER_BACKEND", " Redis ")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, 3, cfg.RedisDB)
}
