package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
)

const PunchSyncJobName = "punch_sync"

type PunchSyncJobs struct {
	syncService punch.SyncService
}

func NewPunchSyncJobs(syncService punch.SyncService) *PunchSyncJobs {
	return &PunchSyncJobs{syncService: syncService}
}

func (j *PunchSyncJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(PunchSyncJobName, interval, j.SyncPunches)
}

// SyncPunches runs one replication pass. A run already in progress elsewhere
// is not a failure of this tick.
func (j *PunchSyncJobs) SyncPunches(ctx context.Context) error {
	result, err := j.syncService.Sync(ctx)
	if errors.Is(err, punch.ErrSyncAlreadyRunning) {
		slog.Info("cron: punch sync skipped, another run holds the lock")
		return nil
	}
	if err != nil {
		return err
	}

	if result.Synced > 0 {
		slog.Info("cron: punches synced", "synced", result.Synced, "watermark", result.Watermark)
	}
	return nil
}
