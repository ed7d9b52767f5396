// Package jobs runs the periodic background work of the service.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/BruksfildServices01/material-rental/internal/logging"
	ucBooking "github.com/BruksfildServices01/material-rental/internal/usecase/booking"
)

const reconcileTimeout = 2 * time.Minute

type Reconciler interface {
	Execute(ctx context.Context) (ucBooking.ReconcileReport, error)
}

// Purger drops cached reads once materials were repaired.
type Purger interface {
	Purge(ctx context.Context) error
}

// StartReconcile schedules the ledger reconciliation every interval. A zero
// interval disables it and returns a nil scheduler.
func StartReconcile(
	interval time.Duration,
	uc Reconciler,
	cache Purger,
	log logging.Logger,
) (gocron.Scheduler, error) {

	if interval <= 0 {
		return nil, nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runReconcile(uc, cache, log)
		}),
		gocron.WithName("reconcile-unavailable-dates"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	log.Info("reconcile scheduled every %s", interval)
	return sched, nil
}

func runReconcile(uc Reconciler, cache Purger, log logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	report, err := uc.Execute(ctx)
	if err != nil {
		log.Error("reconcile: %v", err)
		return
	}

	if report.MaterialsRepaired == 0 {
		return
	}
	log.Warn("reconcile: %d materials repaired, %d dates restored",
		report.MaterialsRepaired, report.DatesRestored)

	if cache != nil {
		if err := cache.Purge(ctx); err != nil {
			log.Warn("reconcile: cache purge: %v", err)
		}
	}
}
