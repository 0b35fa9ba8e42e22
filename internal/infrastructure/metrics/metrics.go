package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
	Bids            *prometheus.CounterVec
	Payments        *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	SMSProviders    *prometheus.CounterVec
	AuctionsSettled *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the process-wide metrics singleton
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = New(namespace, prometheus.DefaultRegisterer)
	})
	return metricsInstance
}

// New builds collectors and registers them with reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Bids: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_total",
			Help:      "Bid attempts by outcome.",
		}, []string{"outcome"}),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payment transitions by kind and status.",
		}, []string{"kind", "status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by channel and status.",
		}, []string{"channel", "status"}),
		SMSProviders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sms_provider_requests_total",
			Help:      "SMS gateway attempts by provider and status.",
		}, []string{"provider", "status"}),
		AuctionsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auctions_settled_total",
			Help:      "Auctions closed by the settlement job, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.Bids,
		m.Payments,
		m.Notifications,
		m.SMSProviders,
		m.AuctionsSettled,
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveBid(outcome string) {
	if m == nil {
		return
	}
	m.Bids.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePayment(kind, status string) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) ObserveNotification(channel, status string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) ObserveSMSProvider(provider, status string) {
	if m == nil {
		return
	}
	m.SMSProviders.WithLabelValues(provider, status).Inc()
}

func (m *Metrics) ObserveSettlement(result string) {
	if m == nil {
		return
	}
	m.AuctionsSettled.WithLabelValues(result).Inc()
}
