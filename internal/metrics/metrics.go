// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics defines the Prometheus collectors exposed on /metrics.
// Each Metrics value owns its registry so tests can create as many as
// they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"footprints/internal/locations"
)

// Metrics holds every collector of the server.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Viewer metrics
	ViewerEventsTotal   *prometheus.CounterVec
	CreatorExportsTotal *prometheus.CounterVec

	// Location store metrics
	LocationsLoaded     prometheus.Gauge
	LocationsLoadsTotal *prometheus.CounterVec

	// Cache and rate limit metrics
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	RateLimitRejects *prometheus.CounterVec
}

// New creates the collectors on a fresh registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ViewerEventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewer_events_total",
				Help: "Viewer events applied to sessions",
			},
			[]string{"event", "status"},
		),
		CreatorExportsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creator_exports_total",
				Help: "Creator JSON exports by result",
			},
			[]string{"result"},
		),

		LocationsLoaded: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "locations_loaded",
				Help: "Number of locations in the current load",
			},
		),
		LocationsLoadsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locations_loads_total",
				Help: "Completed location loads by winning source",
			},
			[]string{"source"},
		),

		CacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Response cache hits",
			},
			[]string{"cache"},
		),
		CacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Response cache misses",
			},
			[]string{"cache"},
		),
		RateLimitRejects: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_rejects_total",
				Help: "Requests rejected by a rate limiter",
			},
			[]string{"limiter"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLoad records a completed location load. Register it with
// locations.Store.OnLoad.
func (m *Metrics) ObserveLoad(snap locations.Snapshot) {
	m.LocationsLoaded.Set(float64(len(snap.Locations)))
	m.LocationsLoadsTotal.WithLabelValues(snap.Source).Inc()
}

// Middleware records request count, duration and in-flight requests,
// labelled by the chi route pattern to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
