package scheduler

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks every job that is Pending or Firing. A job that reaches
// Completed or Cancelled is removed in the same critical section that
// transitions it, so lookups never observe a terminal job.
//
// All state transitions happen under one mutex. Cancel and MarkFiring
// therefore serialize: whichever commits first decides the job's fate.
type Registry struct {
	mu     sync.Mutex
	jobs   map[uuid.UUID]*Job
	closed bool

	// firing counts jobs between MarkFiring and Complete. Add is only
	// called under mu while !closed, so it never races Wait.
	firing sync.WaitGroup
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[uuid.UUID]*Job)}
}

// Insert registers job as Pending and returns its ID as the handle.
func (r *Registry) Insert(job *Job) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return uuid.Nil, ErrSchedulerClosed
	}
	if _, exists := r.jobs[job.ID]; exists {
		return uuid.Nil, ErrDuplicateJob
	}

	job.state = StatePending
	r.jobs[job.ID] = job
	return job.ID, nil
}

// attachTimer records the timer armed for id so Cancel can stop it. It
// reports false when the job already left Pending, in which case the
// caller owns the timer.
func (r *Registry) attachTimer(id uuid.UUID, t Timer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.state != StatePending {
		return false
	}
	job.timer = t
	return true
}

// Cancel moves a Pending job to Cancelled and removes it. It returns false
// when the job is unknown or has already started firing.
func (r *Registry) Cancel(id uuid.UUID) bool {
	_, ok := r.cancel(id)
	return ok
}

func (r *Registry) cancel(id uuid.UUID) (JobInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.state != StatePending {
		return JobInfo{}, false
	}
	r.cancelLocked(job)
	return job.info(), true
}

func (r *Registry) cancelLocked(job *Job) {
	job.state = StateCancelled
	if job.timer != nil {
		job.timer.Stop()
		job.timer = nil
	}
	delete(r.jobs, job.ID)
}

// MarkFiring moves a Pending job to Firing. It returns false when the job
// was cancelled, is already firing, or the registry is closed. The returned
// job's payload fields must be treated as read-only.
func (r *Registry) MarkFiring(id uuid.UUID) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, false
	}
	job, ok := r.jobs[id]
	if !ok || job.state != StatePending {
		return nil, false
	}

	job.state = StateFiring
	job.timer = nil
	r.firing.Add(1)
	return job, true
}

// Complete moves a Firing job to Completed and removes it. Calling it for
// an unknown or non-firing job is a no-op.
func (r *Registry) Complete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.state != StateFiring {
		return
	}
	job.state = StateCompleted
	delete(r.jobs, id)
	r.firing.Done()
}

// Get returns a snapshot of the job, or false once it is terminal.
func (r *Registry) Get(id uuid.UUID) (JobInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return JobInfo{}, false
	}
	return job.info(), true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// List returns snapshots of all registered jobs ordered by target time.
func (r *Registry) List() []JobInfo {
	r.mu.Lock()
	infos := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		infos = append(infos, job.info())
	}
	r.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].TargetTime.Equal(infos[j].TargetTime) {
			return infos[i].ID.String() < infos[j].ID.String()
		}
		return infos[i].TargetTime.Before(infos[j].TargetTime)
	})
	return infos
}

// Close cancels every Pending job and refuses further inserts and firings.
// Firing jobs are left to finish; use Wait to block on them. It returns
// snapshots of the jobs it cancelled and is safe to call more than once.
func (r *Registry) Close() []JobInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	var cancelled []JobInfo
	for _, job := range r.jobs {
		if job.state == StatePending {
			r.cancelLocked(job)
			cancelled = append(cancelled, job.info())
		}
	}
	return cancelled
}

// Wait blocks until every Firing job has completed or ctx is done. It is
// only meaningful after Close.
func (r *Registry) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.firing.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
