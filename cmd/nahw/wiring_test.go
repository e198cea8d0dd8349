package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw/internal/config"
	"github.com/cours-d-arabe/nahw/internal/metrics"
)

func TestBuildAnalyzerLexicon(t *testing.T) {
	cfg := &config.Config{Analyzer: config.AnalyzerConfig{
		Backend:     config.BackendLexicon,
		LexiconPath: filepath.Join("..", "..", "data", "lexicon.ar"),
		Serialize:   true,
	}}
	config.ApplyDefaults(cfg)
	m := metrics.New()

	a, closeFn, err := buildAnalyzer(context.Background(), cfg, m, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	words, err := a.Disambiguate(context.Background(), []string{"مكتوب", "قلم"})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "مفعول", *words[0].Top().Pattern)
	assert.Nil(t, words[1].Top())
	n, err := testutil.GatherAndCount(m.Registry(), "nahw_disambiguation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBuildAnalyzerLexiconMissing(t *testing.T) {
	cfg := &config.Config{Analyzer: config.AnalyzerConfig{
		Backend:     config.BackendLexicon,
		LexiconPath: filepath.Join(t.TempDir(), "none.ar"),
	}}
	_, _, err := buildAnalyzer(context.Background(), cfg, metrics.New(), zap.NewNop())
	assert.Error(t, err)
}

func TestBuildAnalyzerCamel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			return
		}
		_, _ = w.Write([]byte(`{"words":[{"word":"كان","analyses":[{"pos":"VERB"}]}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{Analyzer: config.AnalyzerConfig{
		Backend:  config.BackendCamel,
		CamelURL: srv.URL,
	}}
	config.ApplyDefaults(cfg)

	a, closeFn, err := buildAnalyzer(context.Background(), cfg, metrics.New(), zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	words, err := a.Disambiguate(context.Background(), []string{"كان"})
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "VERB", *words[0].Top().POS)
}
