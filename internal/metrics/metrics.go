package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the mock backend.
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Envelope failures by backend code
	EnvelopeErrors *prometheus.CounterVec

	// Authentication metrics
	Logins       *prometheus.CounterVec
	TokensIssued prometheus.Counter
	TokensDenied *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrconsole_mock_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hrconsole_mock_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"route", "method"},
		),
		EnvelopeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrconsole_mock_envelope_errors_total",
				Help: "Total number of responses carrying a nonzero envelope code",
			},
			[]string{"code"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrconsole_mock_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),
		TokensIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hrconsole_mock_tokens_issued_total",
				Help: "Total number of session tokens issued",
			},
		),
		TokensDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrconsole_mock_tokens_denied_total",
				Help: "Total number of requests refused for a missing, invalid or expired token",
			},
			[]string{"reason"},
		),
	}
}

// RecordRequest records one served request. Unmatched routes are grouped
// under "unmatched" to keep label cardinality bounded.
func (m *Metrics) RecordRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// RecordEnvelopeError records a failure envelope.
func (m *Metrics) RecordEnvelopeError(code int) {
	m.EnvelopeErrors.WithLabelValues(strconv.Itoa(code)).Inc()
}

// RecordLogin records a login attempt.
func (m *Metrics) RecordLogin(success bool) {
	result := "rejected"
	if success {
		result = "success"
		m.TokensIssued.Inc()
	}
	m.Logins.WithLabelValues(result).Inc()
}
