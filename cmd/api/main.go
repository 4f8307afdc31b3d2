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

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
	importService "github.com/cmlabs-hris/hris-attendance-go/internal/service/importer"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name)))
	i18n.Init(cfg.App.DefaultLocale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	loc := cfg.App.Location()

	fallbackDays, err := employee.WorkingDaysFromSchedule(cfg.App.FallbackWorkDays...)
	if err != nil {
		return fmt.Errorf("fallback working days: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db, fallbackDays)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	calendarSvc := calendarService.NewCalendarService(employeeRepo, attendanceRepo, leaveRequestRepo, holidayRepo, calendarService.Options{
		Location:            loc,
		StandardWorkMinutes: cfg.Import.StandardHours * 60,
	})
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, postgresql.Transactor(db))

	importOpts, err := importService.OptionsFromConfig(cfg.Import, loc)
	if err != nil {
		return fmt.Errorf("import rules: %w", err)
	}
	importSvc := importService.NewImportService(employeeRepo, attendanceRepo, leaveRequestRepo, importOpts)

	scheduler := cron.NewScheduler()
	cron.NewImportJobs(importSvc, cfg.Import.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		appHTTP.NewCalendarHandler(calendarSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewImportHandler(importSvc, importOpts.MaxUploadBytes),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
