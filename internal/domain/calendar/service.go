package calendar

import "context"

type CalendarService interface {
	GetEmployeeCalendar(ctx context.Context, query EmployeeCalendarQuery) (EmployeeCalendarResponse, error)
	GetFleetSummary(ctx context.Context, query FleetSummaryQuery) (FleetSummaryResponse, error)
	GetLeaveLanes(ctx context.Context, query LeaveLaneQuery) (LeaveLaneResponse, error)
}
