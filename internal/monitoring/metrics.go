package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects dialogue-engine counters for the /metrics endpoint
type Metrics struct {
	TurnsTotal   *prometheus.CounterVec
	ParsePath    *prometheus.CounterVec
	LLMFailures  prometheus.Counter
	TurnDuration prometheus.Histogram
}

// NewMetrics creates and registers the engine's metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bagelbot_turns_total",
			Help: "Conversation turns processed, by parse result kind.",
		}, []string{"result"}),
		ParsePath: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bagelbot_parse_path_total",
			Help: "Which parser produced the result: deterministic or llm.",
		}, []string{"path"}),
		LLMFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bagelbot_llm_failures_total",
			Help: "Structured-parse calls that timed out or errored.",
		}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bagelbot_turn_duration_seconds",
			Help:    "Wall time per processed turn.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.TurnsTotal, m.ParsePath, m.LLMFailures, m.TurnDuration)
	return m
}

// ObserveTurn records one processed turn
func (m *Metrics) ObserveTurn(result string, took time.Duration) {
	m.TurnsTotal.WithLabelValues(result).Inc()
	m.TurnDuration.Observe(took.Seconds())
}

// RecordPath counts which parser produced a turn's result
func (m *Metrics) RecordPath(path string) {
	m.ParsePath.WithLabelValues(path).Inc()
}

// RecordLLMFailure counts a structured-parse call that errored or timed out
func (m *Metrics) RecordLLMFailure() {
	m.LLMFailures.Inc()
}
