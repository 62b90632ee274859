package metrics

import "github.com/prometheus/client_golang/prometheus"

// MailerMetrics tracks the outbound mail pipeline.
type MailerMetrics struct {
	sent    *prometheus.CounterVec
	failed  *prometheus.CounterVec
	dropped prometheus.Counter
	queued  prometheus.Gauge
}

// NewMailerMetrics registers mailer metrics on the provided registerer.
func NewMailerMetrics(reg prometheus.Registerer) *MailerMetrics {
	if reg == nil {
		return &MailerMetrics{}
	}
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mailer_sent_total",
		Help: "Emails delivered to the SMTP relay.",
	}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mailer_failed_total",
		Help: "Emails that exhausted their retries.",
	}, []string{"kind"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mailer_dropped_total",
		Help: "Emails dropped because the queue was full.",
	})
	queued := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mailer_queue_depth",
		Help: "Emails currently waiting in the worker queue.",
	})
	reg.MustRegister(sent, failed, dropped, queued)
	return &MailerMetrics{
		sent:    sent,
		failed:  failed,
		dropped: dropped,
		queued:  queued,
	}
}

// IncSent increments the delivered counter for the named message kind.
func (m *MailerMetrics) IncSent(kind string) {
	if m == nil || m.sent == nil {
		return
	}
	m.sent.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailed increments the failure counter for the named message kind.
func (m *MailerMetrics) IncFailed(kind string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncDropped increments the dropped counter.
func (m *MailerMetrics) IncDropped() {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.Inc()
}

// SetQueueDepth records the current queue depth.
func (m *MailerMetrics) SetQueueDepth(depth int) {
	if m == nil || m.queued == nil {
		return
	}
	m.queued.Set(float64(depth))
}
