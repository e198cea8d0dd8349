// Package config defines the service configuration. Loading lives in
// loader.go, defaults in defaults.go.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
}

// CORSConfig lists the origins allowed to call the API. "*" allows any.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | console
}

// AnalyzerConfig selects and configures the disambiguation backend.
type AnalyzerConfig struct {
	Backend     string `mapstructure:"backend"` // lexicon | camel
	LexiconPath string `mapstructure:"lexicon_path"`

	CamelURL       string        `mapstructure:"camel_url"`
	CamelTimeout   time.Duration `mapstructure:"camel_timeout"`
	CamelRateLimit float64       `mapstructure:"camel_rate_limit"` // calls per second, 0 = unlimited
	CamelBurst     int           `mapstructure:"camel_burst"`

	// Serialize makes calls to the backend one at a time.
	Serialize bool `mapstructure:"serialize"`
}

// CacheConfig configures the Redis result cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

const (
	BackendLexicon = "lexicon"
	BackendCamel   = "camel"
)

// Validate checks a fully-populated Config and returns the first problem.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("config: server.max_body_size must be > 0, got %d", c.Server.MaxBodySize)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	switch c.Analyzer.Backend {
	case BackendLexicon:
		if c.Analyzer.LexiconPath == "" {
			return fmt.Errorf("config: analyzer.lexicon_path is required for the lexicon backend")
		}
	case BackendCamel:
		if c.Analyzer.CamelURL == "" {
			return fmt.Errorf("config: analyzer.camel_url is required for the camel backend")
		}
		if c.Analyzer.CamelRateLimit < 0 {
			return fmt.Errorf("config: analyzer.camel_rate_limit must be >= 0")
		}
	default:
		return fmt.Errorf("config: analyzer.backend %q is invalid; expected lexicon|camel", c.Analyzer.Backend)
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("config: cache.addr is required when the cache is enabled")
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("config: cache.db must be >= 0, got %d", c.Cache.DB)
		}
		if c.Cache.TTL < 0 {
			return fmt.Errorf("config: cache.ttl must be >= 0")
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}
	return nil
}
