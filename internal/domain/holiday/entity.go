package holiday

import "time"

// PublicHoliday is a company-wide day off. A non-empty RecurrenceRule
// (an RFC 5545 RRULE such as "FREQ=YEARLY") repeats it starting from Date.
type PublicHoliday struct {
	ID             string
	Date           time.Time
	Name           string
	IsActive       bool
	RecurrenceRule *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (h PublicHoliday) IsRecurring() bool {
	return h.RecurrenceRule != nil && *h.RecurrenceRule != ""
}
