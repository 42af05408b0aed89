// Package jobs runs background work, such as index rebuilds, and keeps its
// status around so callers can poll for the outcome.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/model"
)

const (
	cleanupInterval = 10 * time.Minute
	// Retention is how long finished jobs stay visible.
	Retention       = time.Hour
)

// Func is the work of one job. ctx is cancelled when the manager stops.
type Func func(ctx context.Context, job *model.Job) error

// Manager runs jobs on a bounded number of workers. Jobs beyond that number
// stay pending until a slot frees up.
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	slots    chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	logger   *slog.Logger
	now      func() time.Time
}

// NewManager creates a manager running at most maxWorkers jobs at once.
func NewManager(maxWorkers int, logger *slog.Logger) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:   make(map[string]*model.Job),
		slots:  make(chan struct{}, maxWorkers),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		now:    time.Now,
	}
}

// Start launches the periodic removal of expired jobs.
func (m *Manager) Start() {
	m.logger.Info("job manager started", "max_workers", cap(m.slots))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.CleanupOldJobs(Retention)
			case <-m.ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels queued and running jobs and waits for them to return.
// Jobs cannot be executed afterwards.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		m.logger.Info("job manager stopped")
	})
}

// CreateJob registers a pending job and returns its ID.
func (m *Manager) CreateJob(jobType model.JobType, metadata map[string]string) string {
	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		CreatedAt: m.now(),
		Metadata:  metadata,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.logger.Debug("created job", "job_id", job.ID, "type", job.Type)
	return job.ID
}

// PendingJob returns the oldest job of the given type that has not started yet.
func (m *Manager) PendingJob(jobType model.JobType) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var oldest *model.Job
	for _, job := range m.jobs {
		if job.Type != jobType || job.Status != model.JobStatusPending {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = job
		}
	}
	if oldest == nil {
		return "", false
	}
	return oldest.ID, true
}

// GetJob returns a snapshot of the job.
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns snapshots of all jobs, newest first. A nil status matches all.
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// ExecuteJob queues a pending job and returns without waiting for it.
// The job's status records the outcome.
func (m *Manager) ExecuteJob(jobID string, fn Func) error {
	if m.ctx.Err() != nil {
		m.cancelIfPending(jobID)
		return fmt.Errorf("job manager is shutting down")
	}

	m.mu.RLock()
	job, ok := m.jobs[jobID]
	var snapshot *model.Job
	if ok {
		snapshot = copyJob(job)
	}
	m.mu.RUnlock()

	if !ok {
		return errors.NewJobNotFoundError(jobID)
	}
	if snapshot.Status != model.JobStatusPending {
		return fmt.Errorf("job '%s' cannot run from status %s", jobID, snapshot.Status)
	}

	m.wg.Add(1)
	go m.run(snapshot, fn)
	return nil
}

func (m *Manager) run(job *model.Job, fn Func) {
	defer m.wg.Done()

	select {
	case m.slots <- struct{}{}:
	case <-m.ctx.Done():
		m.finish(job.ID, model.JobStatusCancelled, "job manager shutting down")
		return
	}
	defer func() { <-m.slots }()

	m.setRunning(job.ID)
	started := m.now()
	err := fn(m.ctx, job)
	took := m.now().Sub(started)

	switch {
	case err != nil && m.ctx.Err() != nil:
		m.finish(job.ID, model.JobStatusCancelled, err.Error())
		m.logger.Warn("job cancelled", "job_id", job.ID, "duration", took, "error", err)
	case err != nil:
		m.finish(job.ID, model.JobStatusFailed, err.Error())
		m.logger.Error("job failed", "job_id", job.ID, "duration", took, "error", err)
	default:
		m.finish(job.ID, model.JobStatusCompleted, "")
		m.logger.Info("job completed", "job_id", job.ID, "type", job.Type, "duration", took)
	}
}

// UpdateJobProgress records how far a running job has come.
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}
	job.Progress = &model.JobProgress{
		Current: current,
		Total:   total,
		Message: message,
	}
}

func (m *Manager) setRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, ok := m.jobs[jobID]; ok {
		startedAt := m.now()
		job.Status = model.JobStatusRunning
		job.StartedAt = &startedAt
	}
}

func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, ok := m.jobs[jobID]; ok {
		completedAt := m.now()
		job.Status = status
		job.Error = errorMsg
		job.CompletedAt = &completedAt
	}
}

// cancelIfPending keeps a job that will never run from looking queued.
func (m *Manager) cancelIfPending(jobID string) {
	m.mu.RLock()
	job, ok := m.jobs[jobID]
	pending := ok && job.Status == model.JobStatusPending
	m.mu.RUnlock()

	if pending {
		m.finish(jobID, model.JobStatusCancelled, "job manager is shutting down")
	}
}

// CleanupOldJobs drops finished jobs that completed more than maxAge ago and
// returns how many were removed.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	removed := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && !job.CompletedAt.After(cutoff) {
			delete(m.jobs, jobID)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info("cleaned up old jobs", "count", removed)
	}
	return removed
}

func copyJob(job *model.Job) *model.Job {
	snapshot := *job
	if job.Progress != nil {
		progress := *job.Progress
		snapshot.Progress = &progress
	}
	if job.Metadata != nil {
		snapshot.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			snapshot.Metadata[k] = v
		}
	}
	return &snapshot
}
