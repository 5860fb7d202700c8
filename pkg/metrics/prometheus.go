package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	calculations *prometheus.CounterVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	cacheErrors  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		calculations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taengine_calculations_total",
				Help: "Total number of indicator calculations by type and outcome",
			},
			[]string{"indicator", "outcome"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taengine_cache_hits_total",
				Help: "Total number of result cache hits",
			},
			[]string{"timeframe"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taengine_cache_misses_total",
				Help: "Total number of result cache misses",
			},
			[]string{"timeframe"},
		),
		cacheErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taengine_cache_errors_total",
				Help: "Total number of result cache backend errors",
			},
			[]string{"op"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taengine_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCalculation records one finished calculation.
func (r *Recorder) RecordCalculation(indicator string, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	r.calculations.WithLabelValues(indicator, outcome).Inc()
}

// RecordCacheHit records a result cache hit.
func (r *Recorder) RecordCacheHit(timeframe string) {
	r.cacheHits.WithLabelValues(timeframe).Inc()
}

// RecordCacheMiss records a result cache miss.
func (r *Recorder) RecordCacheMiss(timeframe string) {
	r.cacheMisses.WithLabelValues(timeframe).Inc()
}

// RecordCacheError records a cache backend failure by operation.
func (r *Recorder) RecordCacheError(op string) {
	r.cacheErrors.WithLabelValues(op).Inc()
}

// RecordLatency records operation duration in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
