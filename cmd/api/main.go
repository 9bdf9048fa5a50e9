package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manel-hris/attendance-payroll/internal/config"
	"github.com/manel-hris/attendance-payroll/internal/domain/punch"
	appHTTP "github.com/manel-hris/attendance-payroll/internal/handler/http"
	"github.com/manel-hris/attendance-payroll/internal/pkg/cron"
	"github.com/manel-hris/attendance-payroll/internal/pkg/database"
	"github.com/manel-hris/attendance-payroll/internal/pkg/jwt"
	"github.com/manel-hris/attendance-payroll/internal/repository/biotime"
	"github.com/manel-hris/attendance-payroll/internal/repository/postgresql"
	holidayService "github.com/manel-hris/attendance-payroll/internal/service/holiday"
	punchService "github.com/manel-hris/attendance-payroll/internal/service/punch"
	reportService "github.com/manel-hris/attendance-payroll/internal/service/report"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.App.SlogLevel(), cfg.App.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// The upstream terminal database is optional for the API; without it the
	// sync endpoint answers 503.
	var upstream punch.UpstreamSource
	if cfg.BioTime.DSN != "" {
		src, err := biotime.Open(ctx, cfg.BioTime.DSN)
		if err != nil {
			return fmt.Errorf("connect biotime: %w", err)
		}
		defer src.Close()
		upstream = src
	}

	tx := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	recordRepo := postgresql.NewDutyRecordRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	punchSvc := punchService.NewPunchService(tx, punchRepo, employeeRepo)
	syncSvc := punchService.NewSyncService(tx, punchRepo, upstream, cfg.Sync.BatchSize)
	reportSvc := reportService.NewReportService(employeeRepo, punchSvc)
	holidaySvc := holidayService.NewHolidayService(tx, holidayRepo, recordRepo, reportSvc)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Report:     appHTTP.NewReportHandler(reportSvc, holidaySvc),
		Attendance: appHTTP.NewAttendanceHandler(punchSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Sync:       appHTTP.NewSyncHandler(syncSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.App.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Sync.Enabled {
		scheduler := cron.NewScheduler(gctx)
		cron.NewPunchSyncJobs(syncSvc).RegisterJobs(scheduler, cfg.Sync.Interval)
		scheduler.Start()
		g.Go(func() error {
			<-gctx.Done()
			scheduler.Stop()
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
