package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_JobLifecycle(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.JobScheduled(2 * time.Second)
	m.JobScheduled(-10 * time.Second)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobsScheduled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobsActive))

	m.JobCancelled()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsCancelled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsActive))

	m.JobFired()
	m.JobCompleted("delivered")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsFired))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsCompleted.WithLabelValues("delivered")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.JobsActive))
}

func TestMetrics_EmailSend(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveEmailSend("smtp", 10*time.Millisecond, true)
	m.ObserveEmailSend("smtp", 10*time.Millisecond, false)
	m.EmailSkipped("smtp")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailSent.WithLabelValues("smtp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailFailed.WithLabelValues("smtp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailNoRcpt.WithLabelValues("smtp")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.JobScheduled(time.Second)
		m.JobCancelled()
		m.JobFired()
		m.JobCompleted("failed")
		m.ObserveEmailSend("smtp", time.Second, true)
		m.EmailSkipped("smtp")
	})
}

func TestCaptureError_DisabledIsNoop(t *testing.T) {
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		CaptureError(errors.New("boom"), map[string]interface{}{"job_id": "abc"})
		CapturePanic("boom", nil)
	})
}
