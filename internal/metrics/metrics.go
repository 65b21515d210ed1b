package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the server's Prometheus collectors. A nil *Recorder is a
// valid no-op recorder.
type Recorder struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	upstream *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	emitted  prometheus.Counter
}

func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asteroidwatch_http_requests_total",
				Help: "HTTP requests served, by route and status code",
			},
			[]string{"route", "code"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asteroidwatch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		upstream: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asteroidwatch_upstream_requests_total",
				Help: "Calls to the NeoWs API, by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		skipped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asteroidwatch_records_skipped_total",
				Help: "Upstream records dropped during normalization, by reason",
			},
			[]string{"reason"},
		),
		emitted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "asteroidwatch_records_emitted_total",
				Help: "Normalized asteroid records returned to clients",
			},
		),
	}
}

func (r *Recorder) RecordRequest(route, code string, seconds float64) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, code).Inc()
	r.latency.WithLabelValues(route).Observe(seconds)
}

func (r *Recorder) RecordUpstream(endpoint, outcome string) {
	if r == nil {
		return
	}
	r.upstream.WithLabelValues(endpoint, outcome).Inc()
}

func (r *Recorder) RecordSkipped(reason string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.skipped.WithLabelValues(reason).Add(float64(n))
}

func (r *Recorder) RecordEmitted(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.emitted.Add(float64(n))
}
