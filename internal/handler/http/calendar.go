package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type CalendarHandler interface {
	GetEmployeeCalendar(w http.ResponseWriter, r *http.Request)
	GetFleetSummary(w http.ResponseWriter, r *http.Request)
	GetLeaveLanes(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// GetEmployeeCalendar implements CalendarHandler.
func (h *calendarHandlerImpl) GetEmployeeCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := calendar.EmployeeCalendarQuery{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}

	result, err := h.calendarService.GetEmployeeCalendar(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetFleetSummary implements CalendarHandler.
func (h *calendarHandlerImpl) GetFleetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := calendar.FleetSummaryQuery{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	// employee_id may repeat or carry a comma separated list
	for _, raw := range q["employee_id"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.EmployeeIDs = append(query.EmployeeIDs, id)
			}
		}
	}

	if include := q.Get("include_days"); include != "" {
		includeDays, err := strconv.ParseBool(include)
		if err != nil {
			response.BadRequest(w, "include_days must be a boolean", nil)
			return
		}
		query.IncludeDays = includeDays
	}

	result, err := h.calendarService.GetFleetSummary(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result.Employees)})
}

// GetLeaveLanes implements CalendarHandler.
func (h *calendarHandlerImpl) GetLeaveLanes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := calendar.LeaveLaneQuery{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Status:    q.Get("status"),
	}
	if employeeID := q.Get("employee_id"); employeeID != "" {
		query.EmployeeID = &employeeID
	}

	result, err := h.calendarService.GetLeaveLanes(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
