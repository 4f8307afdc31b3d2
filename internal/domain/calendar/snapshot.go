package calendar

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
)

// Snapshot is a read-only view of the data needed to classify days. It is
// owned by the caller and safe for concurrent reads once built.
type Snapshot struct {
	// Today is the reference date. Dates strictly before it may be absent.
	Today time.Time
	// StandardWorkMinutes is the worked time for a full day; zero means attendance.StandardWorkMinutes.
	StandardWorkMinutes int

	holidays map[string]holiday.PublicHoliday
	leaves   map[string][]leave.LeaveRequest
	records  map[recordKey]attendance.Attendance
}

type recordKey struct {
	employeeID string
	date       string
}

// NewSnapshot indexes concrete holidays, leave requests and attendance
// records. Inactive holidays and leave that is not approved are dropped.
func NewSnapshot(today time.Time, holidays []holiday.PublicHoliday, leaves []leave.LeaveRequest, records []attendance.Attendance) *Snapshot {
	s := &Snapshot{
		Today:    dateutil.Truncate(today),
		holidays: make(map[string]holiday.PublicHoliday, len(holidays)),
		leaves:   make(map[string][]leave.LeaveRequest),
		records:  make(map[recordKey]attendance.Attendance, len(records)),
	}

	for _, h := range holidays {
		if !h.IsActive {
			continue
		}
		key := dateutil.Key(h.Date)
		if _, exists := s.holidays[key]; !exists {
			s.holidays[key] = h
		}
	}

	for _, lr := range leaves {
		if lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		s.leaves[lr.EmployeeID] = append(s.leaves[lr.EmployeeID], lr)
	}
	for _, list := range s.leaves {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartDate.Before(list[j].StartDate)
		})
	}

	for _, rec := range records {
		key := recordKey{employeeID: rec.EmployeeID, date: dateutil.Key(rec.Date)}
		if _, exists := s.records[key]; !exists {
			s.records[key] = rec
		}
	}

	return s
}

func (s *Snapshot) HolidayOn(date time.Time) (holiday.PublicHoliday, bool) {
	h, ok := s.holidays[dateutil.Key(date)]
	return h, ok
}

// LeaveOn returns the earliest-starting approved leave covering date.
func (s *Snapshot) LeaveOn(employeeID string, date time.Time) (leave.LeaveRequest, bool) {
	for _, lr := range s.leaves[employeeID] {
		if lr.Covers(date) {
			return lr, true
		}
	}
	return leave.LeaveRequest{}, false
}

func (s *Snapshot) RecordOn(employeeID string, date time.Time) (attendance.Attendance, bool) {
	rec, ok := s.records[recordKey{employeeID: employeeID, date: dateutil.Key(date)}]
	return rec, ok
}

func (s *Snapshot) FullDayMinutes() int {
	if s.StandardWorkMinutes > 0 {
		return s.StandardWorkMinutes
	}
	return attendance.StandardWorkMinutes
}
