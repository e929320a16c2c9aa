package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle position of a scheduled job.
type State int

const (
	StatePending State = iota
	StateFiring
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFiring:
		return "firing"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Timer is the handle returned by Config.AfterFunc. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Job is a one-shot send of a campaign's content to a fixed recipient list.
// Subject, Body and Recipients are resolved when the job is scheduled and
// never re-read from the stores.
type Job struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	OwnerEmail string
	TargetTime time.Time
	Subject    string
	Body       string
	Recipients []string
	CreatedAt  time.Time

	// guarded by the owning Registry's mutex
	state State
	timer Timer
}

// JobInfo is a point-in-time copy of a registered job.
type JobInfo struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	OwnerEmail string    `json:"owner_email"`
	TargetTime time.Time `json:"target_time"`
	Subject    string    `json:"subject"`
	Recipients []string  `json:"recipients"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

func (j *Job) info() JobInfo {
	recipients := make([]string, len(j.Recipients))
	copy(recipients, j.Recipients)

	return JobInfo{
		ID:         j.ID,
		CampaignID: j.CampaignID,
		OwnerEmail: j.OwnerEmail,
		TargetTime: j.TargetTime,
		Subject:    j.Subject,
		Recipients: recipients,
		State:      j.state.String(),
		CreatedAt:  j.CreatedAt,
	}
}
