// Package jobs provides scheduled background tasks for the warehouse service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second-level
// schedules.
//
// # Available Jobs
//
// DriverReconciliationJob repairs driver availability from the assignment
// table. Claims and delivery updates keep drivers in step inside their own
// transactions; the job catches rows changed outside them, such as manual
// database fixes.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileDriversHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick.
package jobs
