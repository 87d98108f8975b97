// Package metrics holds the Prometheus collectors of the image gateway.
//
// Every [Metrics] owns its own registry so tests can build independent
// instances without clashing on the global default registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "image_gateway"

// Charge outcomes used as the "outcome" label of the charges counter.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeFailed  = "failed"
)

// Capability names used as the "capability" label.
const (
	CapabilityRemoveBackground = "remove_bg"
	CapabilityUpscale          = "upscale"
)

// Metrics groups the collectors updated by the HTTP layer and the services.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	charges         *prometheus.CounterVec
	chargeConflicts *prometheus.CounterVec

	capabilityFailures *prometheus.CounterVec
	upscaleSkipped     prometheus.Counter
	modelLoaded        prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route"}),
		charges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_charges_total",
			Help:      "Quota charge outcomes by bucket.",
		}, []string{"bucket", "outcome"}),
		chargeConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_charge_conflicts_total",
			Help:      "Ledger transaction conflicts that triggered a retry.",
		}, []string{"bucket"}),
		capabilityFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_failures_total",
			Help:      "Failed invocations of a processing capability.",
		}, []string{"capability"}),
		upscaleSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upscale_skipped_total",
			Help:      "Upscale requests answered with the original image because it exceeded the size guard.",
		}),
		modelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upscaler_model_loaded",
			Help:      "1 when the super-resolution capability is available, 0 otherwise.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.charges,
		m.chargeConflicts,
		m.capabilityFailures,
		m.upscaleSkipped,
		m.modelLoaded,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCharge(bucket, outcome string) {
	m.charges.WithLabelValues(bucket, outcome).Inc()
}

func (m *Metrics) ObserveConflict(bucket string) {
	m.chargeConflicts.WithLabelValues(bucket).Inc()
}

func (m *Metrics) ObserveCapabilityFailure(capability string) {
	m.capabilityFailures.WithLabelValues(capability).Inc()
}

func (m *Metrics) ObserveUpscaleSkipped() {
	m.upscaleSkipped.Inc()
}

// SetModelLoaded records the startup state of the upscaler capability.
func (m *Metrics) SetModelLoaded(loaded bool) {
	if loaded {
		m.modelLoaded.Set(1)
		return
	}
	m.modelLoaded.Set(0)
}
