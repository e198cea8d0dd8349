// Package camel is an Analyzer backed by a CAMeL Tools sidecar: a small HTTP
// service wrapping the morphological analyzer and the maximum-likelihood
// disambiguator.
//
// Request and response:
//
//	POST {base}/disambiguate  {"words": ["كان", "الطالب"]}
//	200 {"words": [{"word": "كان", "analyses": [{"pos": "VERB", ...}]}, ...]}
package camel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cours-d-arabe/nahw"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxResponse bounds the response body read from the sidecar.
	maxResponse = 8 << 20
)

type disambiguateRequest struct {
	Words []string `json:"words"`
}

type disambiguateResponse struct {
	Words []nahw.Word `json:"words"`
}

// Client talks to the sidecar. It is safe for concurrent use; serialize it
// with nahw.Serialized if the sidecar is not.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each call, on top of the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps calls to rps per second with the given burst.
// A non-positive rps means no limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for the sidecar at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("camel: empty base URL")
	}
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Disambiguate sends tokens to the sidecar. Transport failures and non-200
// answers wrap nahw.ErrAnalyzerUnavailable; undecodable bodies wrap
// nahw.ErrMalformedAnalysis.
func (c *Client) Disambiguate(ctx context.Context, tokens []string) ([]nahw.Word, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", nahw.ErrAnalyzerUnavailable, err)
		}
	}

	body, err := json.Marshal(disambiguateRequest{Words: tokens})
	if err != nil {
		return nil, fmt.Errorf("camel: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/disambiguate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("camel: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", nahw.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("camel disambiguate",
		zap.Int("tokens", len(tokens)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: sidecar returned %d: %s",
			nahw.ErrAnalyzerUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out disambiguateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponse)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode sidecar response: %w", nahw.ErrMalformedAnalysis, err)
	}
	return out.Words, nil
}

// Ping checks that the sidecar answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", nahw.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: sidecar health returned %d", nahw.ErrAnalyzerUnavailable, resp.StatusCode)
	}
	return nil
}
