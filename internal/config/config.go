package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Providers  ProvidersConfig  `yaml:"providers" mapstructure:"providers"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ProviderConfig tunes one data source.
type ProviderConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BreakerThreshold  int     `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerResetSecs  int     `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ProvidersConfig gates and tunes each data source.
type ProvidersConfig struct {
	Arbeitnow ProviderConfig `yaml:"arbeitnow" mapstructure:"arbeitnow"`
	RemoteOK  ProviderConfig `yaml:"remoteok" mapstructure:"remoteok"`
	WebSearch ProviderConfig `yaml:"websearch" mapstructure:"websearch"`
	Seed      ProviderConfig `yaml:"seed" mapstructure:"seed"`
}

// SearchConfig tunes the orchestration pipeline.
type SearchConfig struct {
	MaxResults    int `yaml:"max_results" mapstructure:"max_results"`
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	DensityCap    int `yaml:"density_cap" mapstructure:"density_cap"`
}

// MonitoringConfig configures health alerting.
type MonitoringConfig struct {
	WebhookURL           string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	FailureRateThreshold float64 `yaml:"failure_rate_threshold" mapstructure:"failure_rate_threshold"`
	MinAvgLeadsPerRun    float64 `yaml:"min_avg_leads_per_run" mapstructure:"min_avg_leads_per_run"`
	CheckIntervalSecs    int     `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	LookbackWindowHours  int     `yaml:"lookback_window_hours" mapstructure:"lookback_window_hours"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and the environment.
// Environment variables use the LEADSCOUT_ prefix with underscores,
// e.g. LEADSCOUT_STORE_DRIVER=sqlite.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadscout.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.max_concurrent", 4)
	v.SetDefault("search.density_cap", 3)
	v.SetDefault("providers.arbeitnow.enabled", true)
	v.SetDefault("providers.arbeitnow.base_url", "https://www.arbeitnow.com/api")
	v.SetDefault("providers.remoteok.enabled", true)
	v.SetDefault("providers.remoteok.base_url", "https://remoteok.com")
	v.SetDefault("providers.websearch.enabled", true)
	v.SetDefault("providers.websearch.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("providers.seed.enabled", false)
	v.SetDefault("monitoring.failure_rate_threshold", 0.5)
	v.SetDefault("monitoring.check_interval_secs", 300)
	v.SetDefault("monitoring.lookback_window_hours", 24)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for a run mode. Mode "search" covers
// the one-shot CLI path, "serve" additionally requires a usable port.
func (c *Config) Validate(mode string) error {
	switch mode {
	case "search", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	var problems []string

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("store.driver must be sqlite or postgres, got %q", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required for the postgres driver")
	}

	if c.Search.MaxResults < 1 || c.Search.MaxResults > 200 {
		problems = append(problems, "search.max_results must be between 1 and 200")
	}
	if c.Search.MaxConcurrent < 1 || c.Search.MaxConcurrent > 16 {
		problems = append(problems, "search.max_concurrent must be between 1 and 16")
	}
	if c.Search.DensityCap < 1 {
		problems = append(problems, "search.density_cap must be >= 1")
	}

	if mode == "serve" && (c.Server.Port < 1 || c.Server.Port > 65535) {
		problems = append(problems, "server.port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
