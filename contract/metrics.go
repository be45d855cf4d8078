package contract

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts pipeline outcomes. All methods are nil-safe so metrics
// stay optional.
type Metrics struct {
	confirmed        prometheus.Counter
	stageFailures    *prometheus.CounterVec
	fallbackAttempts prometheus.Counter
}

// NewMetrics builds and registers the pipeline metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		confirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contract_executor_confirmed_total",
			Help: "Contract calls confirmed by the signed pipeline",
		}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contract_executor_stage_failures_total",
			Help: "Pipeline stage failures by failure class",
		}, []string{"class"}),
		fallbackAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contract_executor_fallback_attempts_total",
			Help: "Direct execution fallback attempts",
		}),
	}
	reg.MustRegister(m.confirmed, m.stageFailures, m.fallbackAttempts)
	return m
}

func (m *Metrics) confirmedInc() {
	if m == nil {
		return
	}
	m.confirmed.Inc()
}

func (m *Metrics) stageFailure(class FailureClass) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(string(class)).Inc()
}

func (m *Metrics) fallbackAttempt() {
	if m == nil {
		return
	}
	m.fallbackAttempts.Inc()
}
