package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "NAHW"

// keys are bound to the environment so that NAHW_* overrides reach
// Unmarshal even when no config file mentions them.
var keys = []string{
	"server.addr", "server.read_timeout", "server.write_timeout",
	"server.shutdown_timeout", "server.max_body_size",
	"cors.allowed_origins",
	"log.level", "log.format",
	"analyzer.backend", "analyzer.lexicon_path", "analyzer.camel_url",
	"analyzer.camel_timeout", "analyzer.camel_rate_limit", "analyzer.camel_burst",
	"analyzer.serialize",
	"cache.enabled", "cache.addr", "cache.password", "cache.db", "cache.prefix", "cache.ttl",
	"metrics.enabled", "metrics.path",
}

// newViper returns a viper instance reading YAML, with NAHW_ environment
// overrides where "." in a key becomes "_" (log.level -> NAHW_LOG_LEVEL).
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	return v
}

// Load reads the YAML file at path, applies NAHW_* overrides and defaults,
// and validates the result. An empty path loads from the environment only.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from NAHW_* environment variables and defaults.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}
