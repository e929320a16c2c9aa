package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/dukerupert/outreach/internal/email"
	"github.com/dukerupert/outreach/internal/events"
	"github.com/dukerupert/outreach/internal/telemetry"
)

// CampaignReader supplies campaign content at schedule time.
// It must return domain.ErrCampaignNotFound for an unknown id.
type CampaignReader interface {
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
}

// RecipientQuerier supplies the recipient list at schedule time.
type RecipientQuerier interface {
	QueryEmails(ctx context.Context, campaignID uuid.UUID, ownerEmail string) ([]string, error)
}

// MailTransport delivers a composed message. The result is only logged;
// it never affects the job's lifecycle.
type MailTransport interface {
	Send(ctx context.Context, msg *email.Email) email.Result
}

// Job completion outcomes, used as metric labels.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomePanic     = "panic"
)

// Config holds scheduler configuration
type Config struct {
	// Metrics receives job lifecycle counts. Optional.
	Metrics *telemetry.Metrics

	// Events receives job lifecycle notifications. Defaults to events.Nop.
	Events events.Publisher

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// AfterFunc arms a one-shot timer that calls f on its own goroutine
	// after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

// Scheduler sends a campaign's content to its prospects at a chosen instant.
// Each scheduled job fires at most once; a job that starts firing always
// runs to completion, whatever the transport reports.
type Scheduler struct {
	campaigns  CampaignReader
	recipients RecipientQuerier
	transport  MailTransport
	registry   *Registry
	metrics    *telemetry.Metrics
	events     events.Publisher
	now        func() time.Time
	afterFunc  func(d time.Duration, f func()) Timer
	logger     *slog.Logger
}

// New creates a Scheduler with an empty registry.
func New(
	campaigns CampaignReader,
	recipients RecipientQuerier,
	transport MailTransport,
	config Config,
	logger *slog.Logger,
) *Scheduler {
	// Set defaults
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.AfterFunc == nil {
		config.AfterFunc = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	if config.Events == nil {
		config.Events = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		campaigns:  campaigns,
		recipients: recipients,
		transport:  transport,
		registry:   NewRegistry(),
		metrics:    config.Metrics,
		events:     config.Events,
		now:        config.Now,
		afterFunc:  config.AfterFunc,
		logger:     logger,
	}
}

// Registry exposes the job table for inspection.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Schedule resolves the campaign and its recipients, registers a Pending job
// and arms its timer. It returns as soon as the timer is armed. A target
// time in the past fires immediately. An empty recipient list is accepted.
func (s *Scheduler) Schedule(ctx context.Context, campaignID uuid.UUID, ownerEmail string, targetTime time.Time) (uuid.UUID, error) {
	const op = "scheduler.schedule"

	if targetTime.IsZero() {
		return uuid.Nil, ErrInvalidTargetTime
	}

	campaign, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return uuid.Nil, err
	}

	recipients, err := s.recipients.QueryEmails(ctx, campaignID, ownerEmail)
	if err != nil {
		return uuid.Nil, err
	}
	if recipients == nil {
		recipients = []string{}
	}

	now := s.now()
	job := &Job{
		ID:         uuid.New(),
		CampaignID: campaignID,
		OwnerEmail: ownerEmail,
		TargetTime: targetTime,
		Subject:    campaign.Title,
		Body:       campaign.Content,
		Recipients: recipients,
		CreatedAt:  now,
	}

	id, err := s.registry.Insert(job)
	if err != nil {
		return uuid.Nil, domain.WrapError(err, domain.ErrorCode(err), op, domain.ErrorMessage(err))
	}

	delay := targetTime.Sub(now)
	if delay < 0 {
		delay = 0
	}
	s.metrics.JobScheduled(delay)

	timer := s.afterFunc(delay, func() { s.fire(id) })
	if !s.registry.attachTimer(id, timer) {
		// cancelled or already fired before the timer was recorded
		timer.Stop()
	}

	s.logger.Info("scheduler: job scheduled",
		"job_id", id,
		"campaign_id", campaignID,
		"recipients", len(recipients),
		"target_time", targetTime,
		"delay", delay,
	)
	s.publish(events.SubjectJobScheduled, events.JobEvent{
		JobID:      id,
		CampaignID: campaignID,
		State:      StatePending.String(),
		TargetTime: targetTime,
		Recipients: len(recipients),
	})

	return id, nil
}

// Cancel stops a Pending job. It returns false when the job is unknown or
// firing has already begun.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	info, ok := s.registry.cancel(id)
	if !ok {
		return false
	}
	s.cancelled(info)
	return true
}

func (s *Scheduler) cancelled(info JobInfo) {
	s.metrics.JobCancelled()
	s.logger.Info("scheduler: job cancelled", "job_id", info.ID)
	s.publish(events.SubjectJobCancelled, events.JobEvent{
		JobID:      info.ID,
		CampaignID: info.CampaignID,
		State:      StateCancelled.String(),
		TargetTime: info.TargetTime,
		Recipients: len(info.Recipients),
	})
}

// Get returns a snapshot of a Pending or Firing job.
func (s *Scheduler) Get(id uuid.UUID) (JobInfo, bool) {
	return s.registry.Get(id)
}

// List returns snapshots of all Pending and Firing jobs.
func (s *Scheduler) List() []JobInfo {
	return s.registry.List()
}

// Shutdown cancels every Pending job, refuses new ones, and waits for
// Firing jobs until ctx is done.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	cancelled := s.registry.Close()
	for _, info := range cancelled {
		s.cancelled(info)
	}

	s.logger.Info("scheduler: shutting down", "cancelled", len(cancelled))

	if err := s.registry.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for firing jobs: %w", err)
	}
	return nil
}

// fire is the timer callback. It runs on the timer's goroutine.
func (s *Scheduler) fire(id uuid.UUID) {
	job, ok := s.registry.MarkFiring(id)
	if !ok {
		return
	}
	s.metrics.JobFired()

	outcome := OutcomeFailed
	var result email.Result
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomePanic
			s.logger.Error("scheduler: job panicked",
				"job_id", id,
				"panic", r,
			)
			telemetry.CapturePanic(r, map[string]interface{}{
				"job_id":      id.String(),
				"campaign_id": job.CampaignID.String(),
			})
		}
		s.registry.Complete(id)
		s.metrics.JobCompleted(outcome)
		s.publish(events.SubjectJobCompleted, events.JobEvent{
			JobID:      id,
			CampaignID: job.CampaignID,
			State:      StateCompleted.String(),
			TargetTime: job.TargetTime,
			Recipients: len(job.Recipients),
			Delivered:  result.Delivered,
			Diagnostic: result.Diagnostic,
		})
	}()

	msg := email.Compose(job.Subject, job.Body, job.Recipients)

	// The scheduling request is long gone; the transport bounds the send.
	result = s.transport.Send(context.Background(), msg)
	if result.Delivered {
		outcome = OutcomeDelivered
	}

	s.logger.Info("scheduler: job completed",
		"job_id", id,
		"campaign_id", job.CampaignID,
		"delivered", result.Delivered,
		"diagnostic", result.Diagnostic,
	)
}

// publish is best effort; a bus outage never affects the job.
func (s *Scheduler) publish(subject string, event events.JobEvent) {
	event.At = s.now()
	if err := s.events.Publish(context.Background(), subject, event); err != nil {
		s.logger.Warn("scheduler: event publish failed",
			"subject", subject,
			"job_id", event.JobID,
			"error", err,
		)
	}
}
