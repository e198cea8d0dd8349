package main

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/cours-d-arabe/nahw"
	"github.com/cours-d-arabe/nahw/internal/metrics"
)

type routerConfig struct {
	classifier     *nahw.Classifier
	metrics        *metrics.Metrics
	logger         *zap.Logger
	maxBody        int64
	allowedOrigins []string
	// metricsPath is empty when the metrics endpoint is disabled.
	metricsPath string
}

// newRouter mounts the API:
//
//	POST /analyze         body: {"text":"...","categories":[...],"specialRequest":"..."}
//	POST /api/analyze     same as /analyze
//	GET  /api/categories
//	GET  /healthz
//	GET  /metrics
func newRouter(rc routerConfig) http.Handler {
	mux := http.NewServeMux()
	analyze := handleAnalyze(rc.classifier, rc.metrics, rc.logger, rc.maxBody)
	mux.HandleFunc("/analyze", analyze)
	mux.HandleFunc("/api/analyze", analyze)
	mux.HandleFunc("/api/categories", handleCategories())
	mux.HandleFunc("/healthz", handleHealth())

	routes := map[string]bool{
		"/analyze":        true,
		"/api/analyze":    true,
		"/api/categories": true,
		"/healthz":        true,
	}
	quiet := map[string]bool{"/healthz": true}
	if rc.metricsPath != "" {
		mux.Handle(rc.metricsPath, rc.metrics.Handler())
		routes[rc.metricsPath] = true
		quiet[rc.metricsPath] = true
	}

	c := cors.New(cors.Options{
		AllowedOrigins: rc.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	var h http.Handler = c.Handler(mux)
	h = withRequestLogging(rc.logger, rc.metrics, routes, quiet)(h)
	return withRequestID(h)
}
