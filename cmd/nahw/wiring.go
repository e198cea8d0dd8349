package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/cache"
	"github.com/cours-d-arabe/nahw/camel"
	"github.com/cours-d-arabe/nahw/internal/config"
	"github.com/cours-d-arabe/nahw/internal/metrics"
	"github.com/cours-d-arabe/nahw/lexicon"
)

// buildAnalyzer assembles the backend named in cfg.Analyzer and its
// decorators, innermost first: serialization, timing, cache. The returned
// close function releases the Redis client, if any.
func buildAnalyzer(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (nahw.Analyzer, func() error, error) {
	var (
		a           nahw.Analyzer
		callTimeout time.Duration
	)
	switch cfg.Analyzer.Backend {
	case config.BackendLexicon:
		lex, err := lexicon.Load(cfg.Analyzer.LexiconPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("lexicon loaded",
			zap.String("path", cfg.Analyzer.LexiconPath),
			zap.Int("analyses", lex.Len()),
		)
		a = lex
	case config.BackendCamel:
		cl, err := camel.New(cfg.Analyzer.CamelURL,
			camel.WithTimeout(cfg.Analyzer.CamelTimeout),
			camel.WithRateLimit(cfg.Analyzer.CamelRateLimit, cfg.Analyzer.CamelBurst),
			camel.WithLogger(logger.Named("camel")),
		)
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Analyzer.CamelTimeout)
		if err := cl.Ping(pingCtx); err != nil {
			logger.Warn("camel sidecar not reachable yet", zap.String("url", cfg.Analyzer.CamelURL), zap.Error(err))
		}
		cancel()
		a = cl
		callTimeout = cfg.Analyzer.CamelTimeout
	default:
		return nil, nil, fmt.Errorf("unknown analyzer backend %q", cfg.Analyzer.Backend)
	}

	if cfg.Analyzer.Serialize {
		a = nahw.Serialized(a)
	}
	a = m.Instrument(a)

	closeFn := func() error { return nil }
	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis not reachable, serving uncached until it is", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		}
		cancel()
		a = cache.New(rdb, a,
			cache.WithPrefix(cfg.Cache.Prefix),
			cache.WithTTL(cfg.Cache.TTL),
			cache.WithLogger(logger.Named("cache")),
			cache.WithObserver(m.ObserveCache),
			cache.WithCallTimeout(callTimeout),
		)
		closeFn = rdb.Close
	}
	return a, closeFn, nil
}
