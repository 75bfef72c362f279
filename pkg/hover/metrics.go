package hover

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric the client exports.
const Namespace = "hover"

// Metrics records request and login outcomes for a Client. A nil *Metrics
// records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LoginsTotal     *prometheus.CounterVec
}

// NewMetrics creates the client metrics and registers them with reg.
// Pass a nil reg to create unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "requests_total",
				Help:      "Requests sent to the Hover API by method and HTTP status.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "request_duration_seconds",
				Help:      "Latency of requests to the Hover API.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "logins_total",
				Help:      "Login attempts by result.",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.LoginsTotal)
	}

	return m
}

func (m *Metrics) observeRequest(method string, status int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if err == nil {
		label = strconv.Itoa(status)
	}
	m.RequestsTotal.WithLabelValues(method, label).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) observeLogin(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.LoginsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.LoginsTotal.WithLabelValues("success").Inc()
}
