package config

import "time"

const (
	DefaultServerAddr      = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 1 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultBackend      = BackendLexicon
	DefaultLexiconPath  = "data/lexicon.ar"
	DefaultCamelTimeout = 10 * time.Second
	DefaultCamelBurst   = 1

	DefaultCacheAddr   = "localhost:6379"
	DefaultCachePrefix = "nahw:analysis:"
	DefaultCacheTTL    = 24 * time.Hour

	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
)

// DefaultAllowedOrigins allows any origin.
var DefaultAllowedOrigins = []string{"*"}

// ApplyDefaults fills zero-value fields in cfg. Booleans are left alone:
// their defaults are registered with viper by the loader.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Analyzer.Backend == "" {
		cfg.Analyzer.Backend = DefaultBackend
	}
	if cfg.Analyzer.LexiconPath == "" && cfg.Analyzer.Backend == BackendLexicon {
		cfg.Analyzer.LexiconPath = DefaultLexiconPath
	}
	if cfg.Analyzer.CamelTimeout == 0 {
		cfg.Analyzer.CamelTimeout = DefaultCamelTimeout
	}
	if cfg.Analyzer.CamelBurst == 0 {
		cfg.Analyzer.CamelBurst = DefaultCamelBurst
	}

	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = DefaultCachePrefix
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
