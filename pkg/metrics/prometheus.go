package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	providerAttempts *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
	scoresComputed   prometheus.Counter
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_provider_attempts_total",
				Help: "Provider fetch attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_cache_ops_total",
				Help: "Cache operations by data kind and result",
			},
			[]string{"kind", "result"},
		),
		scoresComputed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "coinpulse_scores_computed_total",
				Help: "Total number of trust scores computed",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordProviderAttempt records one provider attempt outcome
// ("success", "failure", "rate_limited").
func (r *Recorder) RecordProviderAttempt(provider, outcome string) {
	r.providerAttempts.WithLabelValues(provider, outcome).Inc()
}

// RecordCacheOp records a cache operation result ("hit", "miss", "error").
func (r *Recorder) RecordCacheOp(kind, result string) {
	r.cacheOps.WithLabelValues(kind, result).Inc()
}

// RecordScoreComputed counts a completed score calculation.
func (r *Recorder) RecordScoreComputed() {
	r.scoresComputed.Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
