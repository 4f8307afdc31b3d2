package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// employeeColumns selects an employee with the ISO days of week of its work schedule.
const employeeColumns = `
	SELECT e.id, e.employee_code, e.full_name, e.employment_status,
		COALESCE(
			(SELECT array_agg(DISTINCT wst.day_of_week ORDER BY wst.day_of_week)
			 FROM work_schedule_times wst
			 WHERE wst.work_schedule_id = e.work_schedule_id),
			'{}'
		) AS schedule_days
	FROM employees e
`

type employeeRepositoryImpl struct {
	db *database.DB
	// fallbackDays applies to employees whose schedule has no days. Zero
	// means such employees have no working days.
	fallbackDays employee.WorkingDays
}

func NewEmployeeRepository(db *database.DB, fallbackDays employee.WorkingDays) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db, fallbackDays: fallbackDays}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeColumns + `WHERE e.id = $1 AND e.deleted_at IS NULL`

	emp, err := e.scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeColumns + `
		WHERE e.employment_status = $1 AND e.deleted_at IS NULL
		ORDER BY e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := e.scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (e *employeeRepositoryImpl) scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp  employee.Employee
		days []int32
	)
	if err := row.Scan(&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.EmploymentStatus, &days); err != nil {
		return employee.Employee{}, err
	}

	if len(days) == 0 {
		slog.Debug("employee has no work schedule days, using fallback",
			"employee_id", emp.ID,
			"working_days", e.fallbackDays.Indices(),
		)
		emp.WorkingDays = e.fallbackDays
		return emp, nil
	}

	isoDays := make([]int, 0, len(days))
	for _, d := range days {
		isoDays = append(isoDays, int(d))
	}
	wd, err := employee.WorkingDaysFromSchedule(isoDays...)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	emp.WorkingDays = wd
	return emp, nil
}
