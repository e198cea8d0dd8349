// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cours-d-arabe/nahw"
)

const namespace = "nahw"

// Metrics owns a private registry; nothing is registered globally.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	matches         *prometheus.CounterVec
	disambiguation  *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
}

// New registers every collector, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Classification matches by canonical category.",
		}, []string{"category"}),
		disambiguation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "disambiguation_duration_seconds",
			Help:      "Latency of analyzer calls by outcome.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Analysis cache lookups by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: namespace}),
		m.requests,
		m.requestDuration,
		m.matches,
		m.disambiguation,
		m.cacheLookups,
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveMatches counts results under their canonical category, so that an
// alias and its Arabic label share one series.
func (m *Metrics) ObserveMatches(results []nahw.MatchResult) {
	for _, r := range results {
		label, ok := nahw.CanonicalLabel(r.Type)
		if !ok {
			continue
		}
		m.matches.WithLabelValues(label).Inc()
	}
}

// ObserveCache records a cache lookup; it fits cache.WithObserver.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Instrument times every Disambiguate call of a.
func (m *Metrics) Instrument(a nahw.Analyzer) nahw.Analyzer {
	return nahw.AnalyzerFunc(func(ctx context.Context, tokens []string) ([]nahw.Word, error) {
		start := time.Now()
		words, err := a.Disambiguate(ctx, tokens)
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.disambiguation.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		return words, err
	})
}
