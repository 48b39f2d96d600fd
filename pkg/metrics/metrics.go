package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup results recorded by EphemerisCache.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Registry owns the service collectors. Each instance has its own prometheus
// registry so tests can build several without duplicate registration panics.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPLatency    *prometheus.HistogramVec
	Computations   *prometheus.CounterVec
	EphemerisCache *prometheus.CounterVec
}

// New builds and registers all collectors.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kundli",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kundli",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kundli",
			Name:      "computations_total",
			Help:      "Engine computations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		EphemerisCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kundli",
			Name:      "ephemeris_cache_lookups_total",
			Help:      "Ephemeris cache lookups by result.",
		}, []string{"result"}),
	}
	r.reg.MustRegister(
		r.HTTPRequests,
		r.HTTPLatency,
		r.Computations,
		r.EphemerisCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveComputation counts a finished computation; err decides the outcome label.
func (r *Registry) ObserveComputation(kind string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.Computations.WithLabelValues(kind, outcome).Inc()
}

// ObserveCache records an ephemeris cache lookup result.
func (r *Registry) ObserveCache(result string) {
	if r == nil {
		return
	}
	r.EphemerisCache.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer is used by tests to inspect collected samples.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
