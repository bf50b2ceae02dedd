package monitor

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor("boot")
	m.Received("g1", "orders")
	m.Received("g1", "orders")
	m.Acked("g1", "orders")
	m.Retried("g1", "orders")
	m.SetSuspended("g1", true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.received.WithLabelValues("g1", "orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.acked.WithLabelValues("g1", "orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.retried.WithLabelValues("g1", "orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.suspended.WithLabelValues("g1")))

	m.SetSuspended("g1", false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.suspended.WithLabelValues("g1")))
}

func TestMonitor_Handler(t *testing.T) {
	m := NewMonitor("boot")
	m.Acked("g1", "orders")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "boot_messages_acked_total"))
}

func TestMonitor_Separate(t *testing.T) {
	a, b := NewMonitor("boot"), NewMonitor("boot")
	a.Received("g", "t")

	assert.Equal(t, 1, testutil.CollectAndCount(a.received))
	assert.Equal(t, 0, testutil.CollectAndCount(b.received))
}
