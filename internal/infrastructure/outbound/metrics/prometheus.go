package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/ports"
)

var _ ports.Metrics = (*Recorder)(nil)

const namespace = "blueprintmock"

// Recorder exports simulation metrics from its own registry.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	delay    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with process and Go runtime collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Simulated requests by route and outcome.",
			},
			[]string{"method", "route", "outcome", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent simulating a request, injected delay included.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "outcome"},
		),
		delay: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "injected_delay_seconds",
				Help:      "Configured latency applied before answering.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"route"},
		),
	}

	r.registry.MustRegister(
		r.requests,
		r.duration,
		r.delay,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest counts a finished request.
func (r *Recorder) ObserveRequest(method, route, outcome string, status int, elapsed time.Duration) {
	method = methodLabel(method)
	r.requests.WithLabelValues(method, route, outcome, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route, outcome).Observe(elapsed.Seconds())
}

// ObserveDelay records an applied latency.
func (r *Recorder) ObserveDelay(route string, delay time.Duration) {
	r.delay.WithLabelValues(route).Observe(delay.Seconds())
}

// methodLabel keeps the standard methods and folds every other token into
// OTHER so clients cannot grow the series count.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "OTHER"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
