package scheduler

import "github.com/dukerupert/outreach/internal/domain"

var (
	// ErrInvalidTargetTime is returned by Schedule for a zero target time.
	ErrInvalidTargetTime = &domain.Error{Code: domain.EINVALID, Message: "Target time is required"}

	// ErrSchedulerClosed is returned once Shutdown has been called.
	ErrSchedulerClosed = &domain.Error{Code: domain.ECONFLICT, Message: "Scheduler is shutting down"}

	// ErrDuplicateJob is returned by Registry.Insert on an identifier collision.
	ErrDuplicateJob = &domain.Error{Code: domain.ECONFLICT, Message: "Job already registered"}
)
