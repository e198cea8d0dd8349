package camel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-d-arabe/nahw"
)

func sidecar(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestDisambiguate(t *testing.T) {
	c := sidecar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/disambiguate", r.URL.Path)
		var req disambiguateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"كان", "الكاتب"}, req.Words)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"words":[
			{"word":"كان","analyses":[{"pos":"VERB","lemma":"كان"}]},
			{"word":"الكاتب","analyses":[{"pos":"NOUN","pattern":"فاعل","root":""}]}
		]}`))
	})

	words, err := c.Disambiguate(context.Background(), []string{"كان", "الكاتب"})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "VERB", *words[0].Top().POS)
	assert.Nil(t, words[0].Top().Pattern)
	require.NotNil(t, words[1].Top().Root)
	assert.Equal(t, "", *words[1].Top().Root)
}

func TestDisambiguateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
			want: nahw.ErrAnalyzerUnavailable,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"words": [`))
			},
			want: nahw.ErrMalformedAnalysis,
		},
		{
			name: "wrong field type",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"words":[{"word":"كان","analyses":[{"pos":7}]}]}`))
			},
			want: nahw.ErrMalformedAnalysis,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sidecar(t, tt.handler)
			_, err := c.Disambiguate(context.Background(), []string{"كان"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDisambiguateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.Disambiguate(context.Background(), []string{"كان"})
	assert.ErrorIs(t, err, nahw.ErrAnalyzerUnavailable)
}

func TestDisambiguateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.Disambiguate(context.Background(), []string{"كان"})
	assert.ErrorIs(t, err, nahw.ErrAnalyzerUnavailable)
}

func TestRateLimitHonorsContext(t *testing.T) {
	c := sidecar(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"words":[{"word":"كان","analyses":[]}]}`))
	})
	WithRateLimit(0.001, 1)(c)

	_, err := c.Disambiguate(context.Background(), []string{"كان"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Disambiguate(ctx, []string{"كان"})
	assert.ErrorIs(t, err, nahw.ErrAnalyzerUnavailable)
}

func TestPing(t *testing.T) {
	c := sidecar(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
		}
	})
	assert.NoError(t, c.Ping(context.Background()))

	down := sidecar(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.ErrorIs(t, down.Ping(context.Background()), nahw.ErrAnalyzerUnavailable)
}

func TestNewRejectsEmptyURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
