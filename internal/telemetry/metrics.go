package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the scheduler and mail transport.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	JobsScheduled prometheus.Counter
	JobsCancelled prometheus.Counter
	JobsFired     prometheus.Counter
	JobsCompleted *prometheus.CounterVec // outcome: delivered, failed, panic
	JobsActive    prometheus.Gauge
	ScheduleLead  prometheus.Histogram

	EmailSent     *prometheus.CounterVec
	EmailFailed   *prometheus.CounterVec
	EmailNoRcpt   *prometheus.CounterVec
	EmailDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "outreach"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		JobsScheduled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_scheduled_total",
			Help:      "Total campaign send jobs accepted",
		}),
		JobsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_cancelled_total",
			Help:      "Total jobs cancelled before firing",
		}),
		JobsFired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_fired_total",
			Help:      "Total jobs whose timer fired and began sending",
		}),
		JobsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_completed_total",
			Help:      "Total jobs that reached Completed, by send outcome",
		}, []string{"outcome"}),
		JobsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_active",
			Help:      "Jobs currently pending or firing",
		}),
		ScheduleLead: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "schedule_lead_seconds",
			Help:      "Delay between scheduling a job and its target time",
			Buckets:   []float64{0, 1, 10, 60, 300, 3600, 21600, 86400, 604800},
		}),
		EmailSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "sent_total",
			Help:      "Messages accepted by the provider",
		}, []string{"provider"}),
		EmailFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "failed_total",
			Help:      "Messages the provider rejected or that errored in transit",
		}, []string{"provider"}),
		EmailNoRcpt: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "skipped_total",
			Help:      "Messages not sent because they had no recipients",
		}, []string{"provider"}),
		EmailDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "email",
			Name:      "send_duration_seconds",
			Help:      "Time spent in a single provider send",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
	}
}

func (m *Metrics) JobScheduled(lead time.Duration) {
	if m == nil {
		return
	}
	if lead < 0 {
		lead = 0
	}
	m.JobsScheduled.Inc()
	m.JobsActive.Inc()
	m.ScheduleLead.Observe(lead.Seconds())
}

func (m *Metrics) JobCancelled() {
	if m == nil {
		return
	}
	m.JobsCancelled.Inc()
	m.JobsActive.Dec()
}

func (m *Metrics) JobFired() {
	if m == nil {
		return
	}
	m.JobsFired.Inc()
}

func (m *Metrics) JobCompleted(outcome string) {
	if m == nil {
		return
	}
	m.JobsCompleted.WithLabelValues(outcome).Inc()
	m.JobsActive.Dec()
}

func (m *Metrics) ObserveEmailSend(provider string, d time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.EmailDuration.WithLabelValues(provider).Observe(d.Seconds())
	if ok {
		m.EmailSent.WithLabelValues(provider).Inc()
		return
	}
	m.EmailFailed.WithLabelValues(provider).Inc()
}

func (m *Metrics) EmailSkipped(provider string) {
	if m == nil {
		return
	}
	m.EmailNoRcpt.WithLabelValues(provider).Inc()
}
