package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "leadscout.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, 4, cfg.Search.MaxConcurrent)
	assert.Equal(t, 3, cfg.Search.DensityCap)
	assert.True(t, cfg.Providers.Arbeitnow.Enabled)
	assert.Equal(t, "https://www.arbeitnow.com/api", cfg.Providers.Arbeitnow.BaseURL)
	assert.True(t, cfg.Providers.RemoteOK.Enabled)
	assert.Equal(t, "https://remoteok.com", cfg.Providers.RemoteOK.BaseURL)
	assert.True(t, cfg.Providers.WebSearch.Enabled)
	assert.Equal(t, "https://html.duckduckgo.com/html/", cfg.Providers.WebSearch.BaseURL)
	assert.False(t, cfg.Providers.Seed.Enabled)
	assert.InDelta(t, 0.5, cfg.Monitoring.FailureRateThreshold, 0.001)
	assert.Equal(t, 300, cfg.Monitoring.CheckIntervalSecs)
	assert.Equal(t, 24, cfg.Monitoring.LookbackWindowHours)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/leadscout
log:
  level: debug
  format: console
server:
  port: 9090
search:
  max_results: 25
providers:
  websearch:
    enabled: false
  seed:
    enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.False(t, cfg.Providers.WebSearch.Enabled)
	assert.True(t, cfg.Providers.Seed.Enabled)
	// Defaults still apply for unset values
	assert.Equal(t, 4, cfg.Search.MaxConcurrent)
	assert.True(t, cfg.Providers.Arbeitnow.Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADSCOUT_STORE_DRIVER", "postgres")
	t.Setenv("LEADSCOUT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("LEADSCOUT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config passing validation in both modes.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "leadscout.db"
	cfg.Search.MaxResults = 50
	cfg.Search.MaxConcurrent = 4
	cfg.Search.DensityCap = 3
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("search"))
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidate_UnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidate_PostgresRequiresURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"
	cfg.Store.DatabaseURL = ""

	err := cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidate_SearchBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Search.MaxResults = 0
	err := cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.max_results must be between 1 and 200")

	cfg.Search.MaxResults = 201
	err = cfg.Validate("search")
	require.Error(t, err)

	cfg.Search.MaxResults = 200
	assert.NoError(t, cfg.Validate("search"))

	cfg.Search.MaxConcurrent = 17
	err = cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.max_concurrent must be between 1 and 16")

	cfg.Search.MaxConcurrent = 4
	cfg.Search.DensityCap = 0
	err = cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.density_cap must be >= 1")
}

func TestValidate_ServePort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	// Port is a serve-only concern.
	assert.NoError(t, cfg.Validate("search"))

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be between 1 and 65535")
}
