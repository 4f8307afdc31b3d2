package importer

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
)

// Rules control how an imported row becomes an attendance record.
type Rules struct {
	// CutoffMinutes is the latest on-time clock in, in minutes after midnight.
	CutoffMinutes   int
	LunchMinutes    int
	StandardMinutes int
	// Location places clock times on the calendar date. Defaults to UTC.
	Location *time.Location
}

func DefaultRules() Rules {
	return Rules{
		CutoffMinutes:   9 * 60,
		LunchMinutes:    60,
		StandardMinutes: attendance.StandardWorkMinutes,
		Location:        time.UTC,
	}
}

func RulesFromConfig(cfg config.ImportConfig, loc *time.Location) (Rules, error) {
	cutoff, ok := clockMinutes(cfg.Cutoff)
	if !ok {
		return Rules{}, fmt.Errorf("invalid import cutoff %q", cfg.Cutoff)
	}
	return Rules{
		CutoffMinutes:   cutoff,
		LunchMinutes:    cfg.LunchMinutes,
		StandardMinutes: cfg.StandardHours * 60,
		Location:        loc,
	}, nil
}

// DeriveRecord builds the attendance record for a valid row.
//
// A row missing either time is "missing". Otherwise worked time is the span
// between the clocks less lunch, floored at zero. A clock in after the cutoff
// makes the day "late", and worked time above zero but short of a standard
// day makes it "early_leave", which takes precedence over late. Late minutes
// are counted whenever a clock in is present, whatever the final status.
func DeriveRecord(rec importer.ParsedRecord, rules Rules) attendance.Attendance {
	loc := rules.Location
	if loc == nil {
		loc = time.UTC
	}

	record := attendance.Attendance{
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     attendance.StatusMissing,
		Source:     attendance.SourceImport,
	}

	in, hasIn := clockMinutes(rec.ClockIn)
	out, hasOut := clockMinutes(rec.ClockOut)
	if hasIn {
		record.ClockIn = clockTime(rec.Date, in, loc)
		record.LateMinutes = max(0, in-rules.CutoffMinutes)
	}
	if hasOut {
		record.ClockOut = clockTime(rec.Date, out, loc)
	}
	if !hasIn || !hasOut {
		return record
	}

	worked := max(0, out-in-rules.LunchMinutes)
	record.WorkHoursInMinutes = worked

	switch {
	case worked > 0 && worked < rules.StandardMinutes:
		record.Status = attendance.StatusEarlyLeave
	case in > rules.CutoffMinutes:
		record.Status = attendance.StatusLate
	default:
		record.Status = attendance.StatusPresent
	}
	return record
}

func clockTime(date time.Time, minutes int, loc *time.Location) *time.Time {
	y, m, d := date.Date()
	t := time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
	return &t
}
