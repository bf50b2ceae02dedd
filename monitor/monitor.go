package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Default = NewMonitor("eventmesh")

// Monitor owns its own registry so several can coexist in one process.
type Monitor struct {
	registry  *prometheus.Registry
	received  *prometheus.CounterVec
	acked     *prometheus.CounterVec
	retried   *prometheus.CounterVec
	suspended *prometheus.GaugeVec
}

func NewMonitor(appName string) (m *Monitor) {
	m = &Monitor{
		registry: prometheus.NewRegistry(),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      MetricReceived,
			Help:      "Messages delivered to mesh listeners",
		}, []string{labelGroup, labelTopic}),
		acked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      MetricAcked,
			Help:      "Messages acknowledged by mesh listeners",
		}, []string{labelGroup, labelTopic}),
		retried: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      MetricRetried,
			Help:      "Messages handed back to the broker for redelivery",
		}, []string{labelGroup, labelTopic}),
		suspended: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      MetricSuspended,
			Help:      "1 while the consumer group is suspended",
		}, []string{labelGroup}),
	}

	m.registry.MustRegister(m.received, m.acked, m.retried, m.suspended)
	return
}

func (m *Monitor) Received(group, topic string) {
	m.received.WithLabelValues(group, topic).Inc()
}

func (m *Monitor) Acked(group, topic string) {
	m.acked.WithLabelValues(group, topic).Inc()
}

func (m *Monitor) Retried(group, topic string) {
	m.retried.WithLabelValues(group, topic).Inc()
}

func (m *Monitor) SetSuspended(group string, suspended bool) {
	var val float64
	if suspended {
		val = 1
	}
	m.suspended.WithLabelValues(group).Set(val)
}

func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
