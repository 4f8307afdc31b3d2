package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
)

// ImportJobs contains bulk import housekeeping jobs
type ImportJobs struct {
	importService importer.ImportService
	interval      time.Duration
}

func NewImportJobs(importService importer.ImportService, interval time.Duration) *ImportJobs {
	return &ImportJobs{
		importService: importService,
		interval:      interval,
	}
}

func (j *ImportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     "expire_import_sessions",
		Interval: j.interval,
		Timeout:  30 * time.Second,
		Fn:       j.ExpireSessions,
	})
}

// ExpireSessions drops import sessions idle past their TTL.
func (j *ImportJobs) ExpireSessions(ctx context.Context) error {
	expired, err := j.importService.ExpireSessions(ctx)
	if err != nil {
		return err
	}
	if expired > 0 {
		slog.Info("Cron: expired import sessions", "count", expired)
	}
	return nil
}
