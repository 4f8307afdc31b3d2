package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, clock_in, clock_out, work_hours_in_minutes,
			late_minutes, status, source
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.WorkHoursInMinutes,
		newAttendance.LateMinutes,
		newAttendance.Status,
		newAttendance.Source,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"a.date >= $1", "a.date <= $2"}
	args := []interface{}{filter.StartDate, filter.EndDate}
	argIdx := 3

	if len(filter.EmployeeIDs) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = ANY($%d)", argIdx))
		args = append(args, filter.EmployeeIDs)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
			COALESCE(a.work_hours_in_minutes, 0), COALESCE(a.late_minutes, 0),
			a.status, a.source, a.created_at, a.updated_at
		FROM attendances a
		WHERE %s
		ORDER BY a.employee_id ASC, a.date ASC
	`, strings.Join(whereClauses, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut,
			&a.WorkHoursInMinutes, &a.LateMinutes,
			&a.Status, &a.Source, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
