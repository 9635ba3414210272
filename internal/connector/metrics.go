package connector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for connectors.
type Metrics struct {
	connects        *prometheus.CounterVec
	disconnects     *prometheus.CounterVec
	connected       *prometheus.GaugeVec
	connectDuration *prometheus.HistogramVec
}

// NewMetrics creates connector collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		connects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paramkit_connector_connects_total",
				Help: "Total number of connect attempts",
			},
			[]string{"engine", "result"},
		),

		disconnects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paramkit_connector_disconnects_total",
				Help: "Total number of disconnects from a connected engine",
			},
			[]string{"engine"},
		),

		connected: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paramkit_connector_connected",
				Help: "Number of connectors currently connected",
			},
			[]string{"engine"},
		),

		connectDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paramkit_connector_connect_duration_seconds",
				Help:    "Duration of connect attempts in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
			},
			[]string{"engine"},
		),
	}
}

// RecordConnect records a connect attempt and its latency.
func (m *Metrics) RecordConnect(engine EngineType, err error, took time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.connects.WithLabelValues(string(engine), result).Inc()
	m.connectDuration.WithLabelValues(string(engine)).Observe(took.Seconds())
	if err == nil {
		m.connected.WithLabelValues(string(engine)).Inc()
	}
}

// RecordDisconnect records a connected engine being closed.
func (m *Metrics) RecordDisconnect(engine EngineType) {
	if m == nil {
		return
	}
	m.disconnects.WithLabelValues(string(engine)).Inc()
	m.connected.WithLabelValues(string(engine)).Dec()
}
