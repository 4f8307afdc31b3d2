package calendar

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/shopspring/decimal"
)

// Describe fills the label and tooltip of status for locale.
func Describe(locale string, status calendar.DayStatus) calendar.DayStatus {
	prefix := "day_status." + string(status.Kind)

	if status.Kind == calendar.DayStatusEmpty {
		status.Label = ""
		status.Tooltip = i18n.TL(locale, prefix+".tooltip")
		return status
	}

	var period string
	if status.HalfDay != calendar.HalfDayNone {
		period = i18n.TL(locale, "half_day."+string(status.HalfDay))
	}

	status.Label = i18n.TL(locale, prefix+".label")
	status.Tooltip = i18n.TL(locale, prefix+".tooltip", map[string]any{
		"Name":        status.HolidayName,
		"LeaveType":   status.LeaveTypeName,
		"Period":      period,
		"Hours":       FormatHours(status.WorkMinutes),
		"LateMinutes": status.LateMinutes,
	})
	return status
}

// FormatHours renders minutes as hours with at most two decimals, e.g. 405 -> "6.75".
func FormatHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		Round(2).
		String()
}
