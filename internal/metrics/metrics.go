// Package metrics holds the Prometheus collectors of the device daemon and
// the relay. Every process owns one [Metrics] value with its own registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-link-sync/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linksync"

// Outbox delivery results.
const (
	DeliverySent      = "sent"
	DeliveryDuplicate = "duplicate"
	DeliveryFailed    = "failed"
)

// Metrics is the set of collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	fetchRequestsSent     *prometheus.CounterVec
	fetchRequestsReceived *prometheus.CounterVec
	malformedContent      prometheus.Counter
	outboxDeliveries      *prometheus.CounterVec
	envelopesAccepted     *prometheus.CounterVec
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchRequestsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_requests_sent_total",
				Help:      "Fetch-latest requests queued for the linked devices.",
			},
			[]string{"type"},
		),
		fetchRequestsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_requests_received_total",
				Help:      "Fetch-latest requests received from the linked devices.",
			},
			[]string{"type"},
		),
		malformedContent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "malformed_content_total",
				Help:      "Pulled envelopes whose content could not be decoded.",
			},
		),
		outboxDeliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "outbox",
				Name:      "deliveries_total",
				Help:      "Outbox delivery attempts by result.",
			},
			[]string{"result"},
		),
		envelopesAccepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "envelopes_accepted_total",
				Help:      "Envelopes stored by the relay by transport.",
			},
			[]string{"transport"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchRequestsSent,
		m.fetchRequestsReceived,
		m.malformedContent,
		m.outboxDeliveries,
		m.envelopesAccepted,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) FetchRequestSent(fetchType models.FetchType) {
	m.fetchRequestsSent.WithLabelValues(fetchType.String()).Inc()
}

func (m *Metrics) FetchRequestReceived(fetchType models.FetchType) {
	m.fetchRequestsReceived.WithLabelValues(fetchType.String()).Inc()
}

func (m *Metrics) MalformedContent() {
	m.malformedContent.Inc()
}

// OutboxDelivery counts one delivery attempt with one of the Delivery*
// results.
func (m *Metrics) OutboxDelivery(result string) {
	m.outboxDeliveries.WithLabelValues(result).Inc()
}

func (m *Metrics) EnvelopeAccepted(transport string) {
	m.envelopesAccepted.WithLabelValues(transport).Inc()
}

// HTTPRequest records a served request. route is the chi route pattern, not
// the raw path.
func (m *Metrics) HTTPRequest(method, route string, status int, duration time.Duration) {
	statusLabel := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	m.httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}
