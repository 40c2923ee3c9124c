package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	operationsTotal          *prometheus.CounterVec
	operationDuration        *prometheus.HistogramVec
	materializedTransactions prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		operationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger engine operations",
			},
			[]string{"operation"},
		),
		operationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger engine operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		materializedTransactions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_materialized_transactions",
				Help: "Number of transactions emitted by the last scheduler run",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]
	switch name {
	case "ledger_operations_total":
		m.operationsTotal.WithLabelValues(operation).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.operationDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "ledger_materialized_transactions":
		m.materializedTransactions.Set(value)
	}
}

// NoopMetrics is a metrics recorder that discards everything. Used in tests.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(name string, tags map[string]string) {}

func (NoopMetrics) RecordProcessingTime(name string, duration time.Duration) {}

func (NoopMetrics) RecordGauge(name string, value float64, tags map[string]string) {}
