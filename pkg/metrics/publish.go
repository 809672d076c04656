package metrics

import "github.com/prometheus/client_golang/prometheus"

// PublishMetrics counts Graph publish attempts by post kind and outcome.
type PublishMetrics struct {
	attempts *prometheus.CounterVec
}

func NewPublishMetrics(reg prometheus.Registerer) *PublishMetrics {
	if reg == nil {
		return &PublishMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facebook_publish_total",
		Help: "Facebook publish attempts, by kind (photo|feed) and status.",
	}, []string{"kind", "status"})
	reg.MustRegister(attempts)
	return &PublishMetrics{attempts: attempts}
}

// Inc records one publish attempt.
func (m *PublishMetrics) Inc(kind, status string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(normalizeLabel(kind), normalizeLabel(status)).Inc()
}
