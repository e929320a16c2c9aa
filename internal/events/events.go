// Package events publishes job lifecycle notifications for other services.
// Publishing is best effort: failures are logged and never change a job's
// outcome.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subjects, relative to the publisher's prefix.
const (
	SubjectJobScheduled = "jobs.scheduled"
	SubjectJobCancelled = "jobs.cancelled"
	SubjectJobCompleted = "jobs.completed"
)

// JobEvent describes one job state transition.
type JobEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	State      string    `json:"state"`
	TargetTime time.Time `json:"target_time"`
	Recipients int       `json:"recipients"`
	Delivered  bool      `json:"delivered,omitempty"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher sends events to a message bus.
type Publisher interface {
	Publish(ctx context.Context, subject string, event JobEvent) error
}

// Nop discards every event. Used when no bus is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, JobEvent) error { return nil }
