package jobs

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/services"
	"gorm.io/gorm"
)

// ReconcileSweep repairs paid bookings missing from the payments ledger.
func ReconcileSweep(schedule string, reconciler services.Reconciler, batch int) Job {
	return Job{
		Name:     "reconcile_orphans",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			n, err := reconciler.ReconcileOrphans(ctx, batch)
			if err != nil {
				return err
			}
			if n > 0 {
				slog.Info("orphaned payments repaired", "count", n)
			}
			return nil
		},
	}
}

// LogPurge trims system_logs to the configured retention window.
func LogPurge(schedule string, db *gorm.DB, retentionDays int) Job {
	return Job{
		Name:     "purge_system_logs",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := logging.PurgeOld(ctx, db, retentionDays)
			return err
		},
	}
}
