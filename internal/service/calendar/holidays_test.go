package calendar

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(s string) *string { return &s }

func TestExpandHolidays(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{ID: "h1", Name: "Independence Day", Date: date("2020-08-17"), IsActive: true, RecurrenceRule: rule("FREQ=YEARLY")},
		{ID: "h2", Name: "Company Outing", Date: date("2026-03-20"), IsActive: true},
		{ID: "h3", Name: "Old Outing", Date: date("2025-03-20"), IsActive: true},
		{ID: "h4", Name: "New Year", Date: date("2024-01-01"), IsActive: true, RecurrenceRule: rule("rrule:freq=yearly")},
	}

	got, err := ExpandHolidays(holidays, date("2026-01-01"), date("2026-12-31"))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "New Year", got[0].Name)
	assert.Equal(t, date("2026-01-01"), got[0].Date)
	assert.Equal(t, "Company Outing", got[1].Name)
	assert.Equal(t, "Independence Day", got[2].Name)
	assert.Equal(t, date("2026-08-17"), got[2].Date)
}

func TestExpandHolidays_Monthly(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{ID: "h1", Name: "Cleaning Day", Date: date("2026-01-15"), IsActive: true, RecurrenceRule: rule("FREQ=MONTHLY;COUNT=3")},
	}

	got, err := ExpandHolidays(holidays, date("2026-01-01"), date("2026-12-31"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, date("2026-03-15"), got[2].Date)
}

func TestExpandHolidays_InvalidRule(t *testing.T) {
	holidays := []holiday.PublicHoliday{
		{ID: "h1", Name: "Broken", Date: date("2026-01-15"), IsActive: true, RecurrenceRule: rule("FREQ=SOMETIMES")},
	}

	_, err := ExpandHolidays(holidays, date("2026-01-01"), date("2026-12-31"))
	assert.ErrorIs(t, err, holiday.ErrInvalidRecurrence)
}
