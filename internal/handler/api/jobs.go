package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/outreach/internal/domain"
	"github.com/dukerupert/outreach/internal/handler"
	"github.com/dukerupert/outreach/internal/middleware"
	"github.com/dukerupert/outreach/internal/scheduler"
)

// JobScheduler is the subset of *scheduler.Scheduler used by JobHandler.
type JobScheduler interface {
	Schedule(ctx context.Context, campaignID uuid.UUID, ownerEmail string, targetTime time.Time) (uuid.UUID, error)
	Cancel(id uuid.UUID) bool
	Get(id uuid.UUID) (scheduler.JobInfo, bool)
	List() []scheduler.JobInfo
}

// JobHandler schedules, inspects and cancels campaign sends.
type JobHandler struct {
	scheduler JobScheduler
	logger    *slog.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(s JobScheduler, logger *slog.Logger) *JobHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{
		scheduler: s,
		logger:    logger,
	}
}

type scheduleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	SendAt string `json:"send_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type scheduleResponse struct {
	JobID      uuid.UUID `json:"job_id"`
	TargetTime time.Time `json:"target_time"`
	Recipients *int      `json:"recipients,omitempty"`
}

// Schedule handles POST /campaigns/{id}/schedule
//
// Body: {"email": "owner@example.com", "send_at": "2026-01-02T15:04:05Z"}
//
// Responds 202 once the job is armed; delivery happens later. recipients is
// omitted when the job already fired before the response was written.
func (h *JobHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	const op = "scheduler.schedule"

	campaignID, err := pathID(r, op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req scheduleRequest
	if err := decodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	owner := strings.TrimSpace(req.Email)
	sendAt, err := time.Parse(time.RFC3339, req.SendAt)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid(op, "send_at must be an RFC 3339 timestamp"))
		return
	}

	jobID, err := h.scheduler.Schedule(r.Context(), campaignID, owner, sendAt)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	resp := scheduleResponse{JobID: jobID, TargetTime: sendAt}
	if info, ok := h.scheduler.Get(jobID); ok {
		n := len(info.Recipients)
		resp.Recipients = &n
	}

	middleware.GetLogger(r.Context(), h.logger).Info("campaign send scheduled",
		"job_id", jobID,
		"campaign_id", campaignID,
		"send_at", sendAt,
	)
	handler.JSON(w, http.StatusAccepted, resp)
}

// List handles GET /jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	handler.JSON(w, http.StatusOK, h.scheduler.List())
}

// Get handles GET /jobs/{id}. Completed and cancelled jobs are not found.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "job.get")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	info, ok := h.scheduler.Get(id)
	if !ok {
		handler.ErrorResponse(w, r, domain.NotFound("job.get", "job", id.String()))
		return
	}

	handler.JSON(w, http.StatusOK, info)
}

// Cancel handles DELETE /jobs/{id}. cancelled is false when the job is
// unknown or already firing.
func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "job.cancel")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"cancelled": h.scheduler.Cancel(id)})
}
