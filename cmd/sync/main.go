// Command sync copies new punches from the BioTime terminal database into the
// local store. It runs once by default; --loop keeps it running on an interval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/manel-hris/attendance-payroll/internal/config"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	"github.com/manel-hris/attendance-payroll/internal/pkg/cron"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/manel-hris/attendance-payroll/internal/repository/biotime"
	"github.com/manel-hris/attendance-payroll/internal/repository/postgresql"
	punchService "github.com/manel-hris/attendance-payroll/internal/service/punch"
)

const (
	exitFailure        = 1
	exitAlreadyRunning = 2
)

func main() {
	loop := flag.Bool("loop", false, "keep syncing every SYNC_INTERVAL until interrupted")
	flag.Parse()

	os.Exit(run(*loop))
}

func run(loop bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return exitFailure
	}
	if cfg.BioTime.DSN == "" {
		fmt.Fprintln(os.Stderr, "BIOTIME_DSN is required")
		return exitFailure
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(slog.String("app", "attendance-payroll-sync")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("connect database", "error", err)
		return exitFailure
	}
	defer db.Close()

	src, err := biotime.Open(ctx, cfg.BioTime.DSN)
	if err != nil {
		slog.Error("connect biotime", "error", err)
		return exitFailure
	}
	defer src.Close()

	syncSvc := punchService.NewSyncService(
		postgresql.NewTransactor(db),
		postgresql.NewPunchRepository(db),
		src,
		cfg.Sync.BatchSize,
	)

	if loop {
		scheduler := cron.NewScheduler(ctx)
		cron.NewPunchSyncJobs(syncSvc).RegisterJobs(scheduler, cfg.Sync.Interval)
		scheduler.Start()
		<-ctx.Done()
		scheduler.Stop()
		return 0
	}

	result, err := syncSvc.Sync(ctx)
	switch {
	case errors.Is(err, punch.ErrSyncAlreadyRunning):
		slog.Warn("another sync run holds the lock")
		return exitAlreadyRunning
	case err != nil:
		slog.Error("sync failed", "error", err, "synced", result.Synced, "watermark", result.Watermark)
		return exitFailure
	}

	slog.Info("sync finished", "run_id", result.RunID, "synced", result.Synced, "batches", result.Batches, "watermark", result.Watermark)
	return 0
}
