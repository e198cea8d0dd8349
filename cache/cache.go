// Package cache puts a Redis cache in front of an Analyzer.
//
// Disambiguation depends on the whole sentence, so the cache unit is the
// full token sequence. Redis failures never fail a request: the cache logs
// them and falls through to the wrapped Analyzer.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cours-d-arabe/nahw"
)

const (
	DefaultPrefix = "nahw:analysis:"
	DefaultTTL    = 24 * time.Hour
)

// Analyzer is a caching nahw.Analyzer.
type Analyzer struct {
	rdb     redis.Cmdable
	inner   nahw.Analyzer
	logger  *zap.Logger
	prefix  string
	ttl     time.Duration
	observe func(hit bool)
	timeout time.Duration
	group   singleflight.Group
}

type Option func(*Analyzer)

func WithPrefix(prefix string) Option {
	return func(a *Analyzer) { a.prefix = prefix }
}

// WithTTL sets the expiry of cached sentences. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(a *Analyzer) { a.ttl = ttl }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithObserver registers f to be told about every lookup outcome.
func WithObserver(f func(hit bool)) Option {
	return func(a *Analyzer) { a.observe = f }
}

// WithCallTimeout bounds a shared call to the wrapped Analyzer. The call is
// detached from the callers' contexts, so this is its only deadline. Zero
// means none.
func WithCallTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// New wraps inner with a cache stored in rdb.
func New(rdb redis.Cmdable, inner nahw.Analyzer, opts ...Option) *Analyzer {
	a := &Analyzer{
		rdb:     rdb,
		inner:   inner,
		logger:  zap.NewNop(),
		prefix:  DefaultPrefix,
		ttl:     DefaultTTL,
		observe: func(bool) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the cache key of a token sequence, without prefix.
func Key(tokens []string) string {
	h := sha256.New()
	for _, t := range tokens {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Disambiguate returns the cached analysis of tokens, or computes and stores
// it. Concurrent misses on the same sentence share one call to the wrapped
// Analyzer; the returned slice may then be shared and must not be modified.
//
// The shared call does not inherit any caller's cancellation: a caller whose
// ctx ends stops waiting and gets ctx.Err(), the others keep waiting.
func (a *Analyzer) Disambiguate(ctx context.Context, tokens []string) ([]nahw.Word, error) {
	key := a.prefix + Key(tokens)
	if words, ok := a.get(ctx, key, len(tokens)); ok {
		a.observe(true)
		return words, nil
	}
	a.observe(false)

	ch := a.group.DoChan(key, func() (interface{}, error) {
		return a.fill(context.WithoutCancel(ctx), key, tokens)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]nahw.Word), nil
	}
}

func (a *Analyzer) fill(ctx context.Context, key string, tokens []string) ([]nahw.Word, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	words, err := a.inner.Disambiguate(ctx, tokens)
	if err != nil {
		return nil, err
	}
	a.set(ctx, key, words)
	return words, nil
}

func (a *Analyzer) get(ctx context.Context, key string, n int) ([]nahw.Word, bool) {
	data, err := a.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		a.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	var words []nahw.Word
	if err := json.Unmarshal(data, &words); err != nil || len(words) != n {
		a.logger.Warn("discarding unusable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return words, true
}

func (a *Analyzer) set(ctx context.Context, key string, words []nahw.Word) {
	data, err := json.Marshal(words)
	if err != nil {
		a.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.rdb.Set(ctx, key, data, a.ttl).Err(); err != nil {
		a.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
