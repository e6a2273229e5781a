package jobs

import (
	"context"
	"log/slog"
	"time"

	"warehouse/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation at second 0 of every minute.
const DefaultReconcileSchedule = "0 * * * * *"

const reconcileTimeout = 30 * time.Second

type driverReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileDriversCommand) (int, error)
}

// DriverReconciliationJob periodically repairs drivers whose status disagrees
// with their assignments: Assigned with nothing out for delivery, or Idle
// while still holding an order.
type DriverReconciliationJob struct {
	handler  driverReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDriverReconciliationJob creates the job. schedule is a six-field cron
// expression (with seconds); empty means DefaultReconcileSchedule.
func NewDriverReconciliationJob(handler driverReconciler, schedule string, logger *slog.Logger) *DriverReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &DriverReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "driver_reconciliation_job"),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *DriverReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single reconciliation pass. Failures are logged; the
// next scheduled run retries.
func (j *DriverReconciliationJob) RunOnce(ctx context.Context) {
	repaired, err := j.handler.Handle(ctx, commands.NewReconcileDriversCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Driver reconciliation failed", "error", err)
		return
	}
	if repaired > 0 {
		j.logger.InfoContext(ctx, "Drivers reconciled", "repaired", repaired)
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *DriverReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Driver reconciliation job stopped")
}
