package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// reef monitoring service.
type Metrics struct {
	// Cache and warehouse metrics.
	CacheLookups   *prometheus.CounterVec // labels: kind={conditions,history,statistics,alerts}, result={hit,miss}
	WarehouseCalls *prometheus.CounterVec // labels: query, outcome={success,error}

	// HTTP metrics.
	HTTPRequests        *prometheus.CounterVec   // labels: method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, path

	// Chat metrics.
	ChatRequests     *prometheus.CounterVec // labels: mode={complete,stream}, outcome={success,fallback}
	ChatTokens       *prometheus.CounterVec // labels: direction={prompt,completion}
	ActiveSessions   prometheus.Gauge
	SessionsSwept    prometheus.Counter
	AlertsGenerated  *prometheus.CounterVec // labels: severity
	ForecastRequests prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CacheLookups,
		m.WarehouseCalls,
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.ChatRequests,
		m.ChatTokens,
		m.ActiveSessions,
		m.SessionsSwept,
		m.AlertsGenerated,
		m.ForecastRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by kind and result.",
		}, []string{"kind", "result"}),
		WarehouseCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "warehouse_calls_total",
			Help:      "Warehouse queries by name and outcome.",
		}, []string{"query", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reefwatch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "chat_requests_total",
			Help:      "Chat turns by mode and outcome.",
		}, []string{"mode", "outcome"}),
		ChatTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "chat_tokens_total",
			Help:      "LLM tokens consumed by direction.",
		}, []string{"direction"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reefwatch",
			Name:      "chat_active_sessions",
			Help:      "Number of live chat sessions.",
		}),
		SessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "chat_sessions_swept_total",
			Help:      "Expired chat sessions removed by the sweeper.",
		}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "alerts_generated_total",
			Help:      "Synthetic bleaching alerts generated by severity.",
		}, []string{"severity"}),
		ForecastRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reefwatch",
			Name:      "forecast_requests_total",
			Help:      "Forecast generations served.",
		}),
	}
}
