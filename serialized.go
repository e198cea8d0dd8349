package nahw

import (
	"context"
	"sync"
)

// Serialized wraps an Analyzer that is not safe for concurrent use so that
// at most one Disambiguate call runs at a time.
func Serialized(a Analyzer) Analyzer {
	return &serialized{inner: a}
}

type serialized struct {
	mu    sync.Mutex
	inner Analyzer
}

func (s *serialized) Disambiguate(ctx context.Context, tokens []string) ([]Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inner.Disambiguate(ctx, tokens)
}
