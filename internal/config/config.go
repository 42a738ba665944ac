// Package config loads and validates service configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. OCCRISK_BLS_API_KEY.
const EnvPrefix = "OCCRISK"

// ErrMissingDSN is returned when the postgres driver is selected without a DSN.
var ErrMissingDSN = errors.New("db.dsn is required when db.driver is postgres")

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Archive backends.
const (
	ArchiveNone   = "none"
	ArchiveMemory = "memory"
	ArchiveLocal  = "local"
	ArchiveGCS    = "gcs"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	BLS      BLSConfig      `mapstructure:"bls"`
	Search   SearchConfig   `mapstructure:"search"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Storage  StorageConfig  `mapstructure:"storage"`
	DB       DBConfig       `mapstructure:"db"`
	PubSub   PubSubConfig   `mapstructure:"pubsub"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port               int `mapstructure:"port"`
	RequestTimeoutSec  int `mapstructure:"request_timeout_seconds"`
	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_seconds"`
	MaxCompareTitles   int `mapstructure:"max_compare_titles"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// BLSConfig configures the statistics API client.
type BLSConfig struct {
	APIKey              string  `mapstructure:"api_key"`
	BaseURL             string  `mapstructure:"base_url"`
	TimeoutSeconds      int     `mapstructure:"timeout_seconds"`
	MaxRetries          int     `mapstructure:"max_retries"`
	BackoffBaseMs       int     `mapstructure:"backoff_base_ms"`
	RateLimitMultiplier int     `mapstructure:"rate_limit_multiplier"`
	SeriesLimit         int     `mapstructure:"series_limit"`
	ChunkDelayMs        int     `mapstructure:"chunk_delay_ms"`
	ProjectionHorizon   int     `mapstructure:"projection_horizon_years"`
	RequestsPerSecond   float64 `mapstructure:"requests_per_second"`
	Burst               int     `mapstructure:"burst"`
}

// SearchConfig configures the title search fallbacks.
type SearchConfig struct {
	KeywordMinScore   float64 `mapstructure:"keyword_min_score"`
	ONetEnabled       bool    `mapstructure:"onet_enabled"`
	ONetBaseURL       string  `mapstructure:"onet_base_url"`
	UserAgent         string  `mapstructure:"user_agent"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// CacheConfig sets the freshness window.
type CacheConfig struct {
	FreshnessDays int `mapstructure:"freshness_days"`
}

// PipelineConfig paces live fetches.
type PipelineConfig struct {
	FetchDelayMs      int `mapstructure:"fetch_delay_ms"`
	ComparisonDelayMs int `mapstructure:"comparison_delay_ms"`
}

// RiskConfig seeds the scorer jitter. Zero seeds from the clock.
type RiskConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

// StorageConfig selects where raw statistics payloads are archived.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	LocalDir  string `mapstructure:"local_dir"`
	Prefix    string `mapstructure:"prefix"`
}

// DBConfig controls access to the relational database.
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	Table       string `mapstructure:"table"`
	MaxConns    int32  `mapstructure:"max_conns"`
	MinConns    int32  `mapstructure:"min_conns"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// PubSubConfig holds metadata for refresh notifications. An empty topic disables them.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout_seconds", 120)
	v.SetDefault("server.shutdown_timeout_seconds", 15)
	v.SetDefault("server.max_compare_titles", 10)
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_key", "")
	v.SetDefault("bls.api_key", "")
	v.SetDefault("bls.base_url", "https://api.bls.gov/publicAPI/v2/timeseries/data/")
	v.SetDefault("bls.timeout_seconds", 30)
	v.SetDefault("bls.max_retries", 3)
	v.SetDefault("bls.backoff_base_ms", 1000)
	v.SetDefault("bls.rate_limit_multiplier", 10)
	v.SetDefault("bls.series_limit", 50)
	v.SetDefault("bls.chunk_delay_ms", 500)
	v.SetDefault("bls.projection_horizon_years", 10)
	v.SetDefault("bls.requests_per_second", 2)
	v.SetDefault("bls.burst", 1)
	v.SetDefault("search.keyword_min_score", 0.5)
	v.SetDefault("search.onet_enabled", true)
	v.SetDefault("search.onet_base_url", "https://www.onetonline.org/find/quick")
	v.SetDefault("search.user_agent", "occupation-risk/0.1")
	v.SetDefault("search.timeout_seconds", 15)
	v.SetDefault("search.requests_per_second", 1)
	v.SetDefault("cache.freshness_days", 90)
	v.SetDefault("pipeline.fetch_delay_ms", 1000)
	v.SetDefault("pipeline.comparison_delay_ms", 1000)
	v.SetDefault("risk.seed", 0)
	v.SetDefault("storage.backend", ArchiveNone)
	v.SetDefault("storage.gcs_bucket", "")
	v.SetDefault("storage.local_dir", "")
	v.SetDefault("storage.prefix", "payloads")
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.table", "occupations")
	v.SetDefault("db.max_conns", 5)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("pubsub.project_id", "")
	v.SetDefault("pubsub.topic_name", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.MaxCompareTitles <= 0 {
		return fmt.Errorf("server.max_compare_titles must be > 0")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	if c.BLS.TimeoutSeconds <= 0 {
		return fmt.Errorf("bls.timeout_seconds must be > 0")
	}
	if c.BLS.SeriesLimit <= 0 || c.BLS.SeriesLimit > 50 {
		return fmt.Errorf("bls.series_limit must be between 1 and 50")
	}
	if c.Cache.FreshnessDays <= 0 {
		return fmt.Errorf("cache.freshness_days must be > 0")
	}
	switch c.DB.Driver {
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return ErrMissingDSN
		}
	case DriverMemory:
	default:
		return fmt.Errorf("db.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.DB.Driver)
	}
	switch c.Storage.Backend {
	case ArchiveNone, ArchiveMemory:
	case ArchiveLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage.local_dir must be set for the local backend")
		}
	case ArchiveGCS:
		if c.Storage.GCSBucket == "" {
			return fmt.Errorf("storage.gcs_bucket must be set for the gcs backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when pubsub.topic_name is")
	}
	return nil
}

// FreshnessWindow returns the cache window as a duration.
func (c Config) FreshnessWindow() time.Duration {
	return time.Duration(c.Cache.FreshnessDays) * 24 * time.Hour
}

// RequestTimeout bounds a single HTTP request to the service.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSec) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSec) * time.Second
}

// Millis converts a millisecond knob to a duration. Negative values stay
// negative so callers can read them as "disabled".
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
