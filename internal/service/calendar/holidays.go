package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/teambition/rrule-go"
)

// ExpandHolidays turns stored holidays into concrete dated holidays inside
// [from, to]. Recurring holidays yield one entry per occurrence.
func ExpandHolidays(holidays []holiday.PublicHoliday, from, to time.Time) ([]holiday.PublicHoliday, error) {
	from, to = dateutil.Truncate(from), dateutil.Truncate(to)

	var expanded []holiday.PublicHoliday
	for _, h := range holidays {
		if !h.IsRecurring() {
			if dateutil.Within(h.Date, from, to) {
				h.Date = dateutil.Truncate(h.Date)
				expanded = append(expanded, h)
			}
			continue
		}

		dates, err := occurrences(h, from, to)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		for _, d := range dates {
			occurrence := h
			occurrence.Date = d
			expanded = append(expanded, occurrence)
		}
	}

	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Date.Before(expanded[j].Date)
	})
	return expanded, nil
}

func occurrences(h holiday.PublicHoliday, from, to time.Time) ([]time.Time, error) {
	raw := strings.ToUpper(strings.TrimSpace(*h.RecurrenceRule))
	raw = strings.TrimPrefix(raw, "RRULE:")

	opts, err := rrule.StrToROption(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrInvalidRecurrence, err)
	}
	opts.Dtstart = dateutil.Truncate(h.Date)

	r, err := rrule.NewRRule(*opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrInvalidRecurrence, err)
	}
	return r.Between(from, to, true), nil
}
