package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aptilab"

// Metrics holds the Prometheus collectors of the API. A nil *Metrics records nothing.
type Metrics struct {
	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	LedgerResets       *prometheus.CounterVec
	QuestionsServed    *prometheus.CounterVec
	GenerationAttempts *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LedgerResets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_resets_total",
				Help:      "Usage ledger resets caused by pool exhaustion",
			},
			[]string{"topic"},
		),
		QuestionsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "questions_served_total",
				Help:      "Questions returned to clients",
			},
			[]string{"source"},
		),
		GenerationAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_attempts_total",
				Help:      "Calls to the text generation backend by model and outcome",
			},
			[]string{"model", "outcome"},
		),
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) LedgerReset(topic string) {
	if m == nil {
		return
	}
	m.LedgerResets.WithLabelValues(topic).Inc()
}

func (m *Metrics) Served(source string, n int) {
	if m == nil {
		return
	}
	m.QuestionsServed.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) GenerationAttempt(model, outcome string) {
	if m == nil {
		return
	}
	m.GenerationAttempts.WithLabelValues(model, outcome).Inc()
}
