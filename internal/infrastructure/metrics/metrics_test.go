package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RecordsObservations(t *testing.T) {
	m := New("gem_test", prometheus.NewRegistry())

	m.ObserveBid("accepted")
	m.ObserveBid("accepted")
	m.ObserveBid("too_low")
	m.ObservePayment("online", "completed")
	m.ObserveNotification("sms", "failed")
	m.ObserveSMSProvider("primary", "ok")
	m.ObserveSettlement("completed")
	m.ObserveHTTP("GET", "/health", "200", 10*time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Bids.WithLabelValues("accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Bids.WithLabelValues("too_low")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Payments.WithLabelValues("online", "completed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sms", "failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SMSProviders.WithLabelValues("primary", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.AuctionsSettled.WithLabelValues("completed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveBid("accepted")
		m.ObservePayment("bank", "success")
		m.ObserveNotification("email", "sent")
		m.ObserveSMSProvider("alternate", "error")
		m.ObserveSettlement("failed")
		m.ObserveHTTP("POST", "/api/bids", "201", time.Second)
	})
}

func TestRegistryIsSingleton(t *testing.T) {
	first := Registry("gem_singleton")
	second := Registry("ignored")
	require.Same(t, first, second)
}
