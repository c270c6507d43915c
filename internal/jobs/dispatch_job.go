// Package jobs provides the scheduled background work of the ordering
// engine, built on github.com/robfig/cron/v3. The only job today is
// the dispatch retry sweep: orders that became ready while no courier
// was online are re-dispatched until one picks them up or the recency
// window closes.
package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule runs the sweep every 15 seconds. Expected
// outcomes (nothing ready, nobody online, lost races) are absorbed by
// the handler, so a frequent schedule is cheap.
const DefaultDispatchSchedule = "*/15 * * * * *"

// DispatchJob periodically re-dispatches ready, unassigned orders.
type DispatchJob struct {
	handler  commands.DispatchReadyOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDispatchJob creates the dispatch retry job. An empty schedule
// falls back to DefaultDispatchSchedule.
func NewDispatchJob(
	handler commands.DispatchReadyOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *DispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dispatch_job"),
	}
}

// Start schedules the sweep and begins running it.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.handler.Handle(ctx); err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep. Running invocations finish.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch job stopped")
}
