package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/recipe-search/model"
)

// RebuildAsync schedules a rebuild and returns its job ID.
// Rebuild jobs run one at a time. While a rebuild is still waiting for its
// turn, further requests return that job instead of queuing another one, since
// it will read the corpus as it is when it starts.
func (e *Engine) RebuildAsync(trigger string) (string, error) {
	if jobID, ok := e.jobManager.PendingJob(model.JobTypeRebuildIndex); ok {
		e.logger.Debug("rebuild already queued", "job_id", jobID, "trigger", trigger)
		return jobID, nil
	}

	jobID := e.jobManager.CreateJob(model.JobTypeRebuildIndex, map[string]string{
		"trigger": trigger,
		"corpus":  e.cfg.Corpus.Path,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.jobManager.UpdateJobProgress(job.ID, 0, 1, "rebuilding index")
		stats, err := e.Rebuild(ctx)
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(job.ID, 1, 1,
			fmt.Sprintf("indexed %d recipes", stats.DocumentCount))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start rebuild job: %w", err)
	}

	return jobID, nil
}

// Job returns the status of a background job.
func (e *Engine) Job(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// Jobs lists background jobs, newest first, optionally filtered by status.
func (e *Engine) Jobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(status)
}
