package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	expenditureQueries        *prometheus.CounterVec
	expenditureQueryDuration  prometheus.Histogram
	expendituresCreatedTotal  prometheus.Counter
	budgetUsageRequestsTotal  prometheus.Counter
	sampleRecordsTotal        prometheus.Counter
	authenticationEventsTotal *prometheus.CounterVec
	activeUsersTotal          prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		expenditureQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "expenditure_queries_total",
				Help: "Total number of expenditure aggregation queries",
			},
			[]string{"status"},
		),
		expenditureQueryDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "expenditure_query_duration_seconds",
				Help:    "Expenditure aggregation query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		expendituresCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "expenditures_created_total",
				Help: "Total number of expenditure records created",
			},
		),
		budgetUsageRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "budget_usage_requests_total",
				Help: "Total number of budget usage reports served",
			},
		),
		sampleRecordsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sample_records_generated_total",
				Help: "Total number of development sample records generated",
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		activeUsersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_users_total",
				Help: "Current number of active user accounts",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "expenditure_query":
		if status := tags["status"]; status != "" {
			m.expenditureQueries.WithLabelValues(status).Inc()
		}
	case "expenditure_created":
		m.expendituresCreatedTotal.Inc()
	case "budget_usage_request":
		m.budgetUsageRequestsTotal.Inc()
	case "sample_record_generated":
		m.sampleRecordsTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "expenditure_query":
		m.expenditureQueryDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "active_users":
		m.activeUsersTotal.Set(value)
	}
}
