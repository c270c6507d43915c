package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the application behind
// one start/stop pair.
type JobManager struct {
	dispatchJob *DispatchJob
}

// NewJobManager creates a job manager with all jobs wired.
func NewJobManager(
	dispatchHandler commands.DispatchReadyOrdersCommandHandler,
	dispatchSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchJob: NewDispatchJob(dispatchHandler, dispatchSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.dispatchJob.Stop()
}
