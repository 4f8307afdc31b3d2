package attendance

import "context"

type AttendanceRepository interface {
	ListByDateRange(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
	// Create appends a record; it returns ErrAttendanceExists when the
	// employee already has a record for that date.
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)
}
