package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/hris-attendance-go/internal/service/calendar"
	importService "github.com/cmlabs-hris/hris-attendance-go/internal/service/importer"
)

// app holds the services a command runs against.
type app struct {
	imports  importer.ImportService
	calendar calendar.CalendarService
	close    func()
}

// openApp loads configuration, connects to the database and wires the
// services. Tests replace it with in-memory services.
var openApp = func(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})))
	i18n.Init(cfg.App.DefaultLocale)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	loc := cfg.App.Location()
	fallbackDays, err := employee.WorkingDaysFromSchedule(cfg.App.FallbackWorkDays...)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("fallback working days: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db, fallbackDays)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	importOpts, err := importService.OptionsFromConfig(cfg.Import, loc)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("import rules: %w", err)
	}

	return &app{
		imports: importService.NewImportService(employeeRepo, attendanceRepo, leaveRequestRepo, importOpts),
		calendar: calendarService.NewCalendarService(employeeRepo, attendanceRepo, leaveRequestRepo, holidayRepo, calendarService.Options{
			Location:            loc,
			StandardWorkMinutes: cfg.Import.StandardHours * 60,
		}),
		close: db.Close,
	}, nil
}
