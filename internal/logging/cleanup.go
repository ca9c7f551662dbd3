package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"gorm.io/gorm"
)

// PurgeOld deletes system_logs older than retentionDays and returns how many
// rows went. It runs on the cron schedule registered by jobs.LogPurge; a
// non-positive retention keeps everything.
func PurgeOld(ctx context.Context, db *gorm.DB, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected, "retention_days", retentionDays)
	}
	return result.RowsAffected, nil
}
