package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	got := Truncate(time.Date(2026, 2, 1, 23, 30, 0, 0, jakarta))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestToday(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-02-02", Key(Today(now, jakarta)))
	assert.Equal(t, "2026-02-01", Key(Today(now, nil)))
}

func TestRange(t *testing.T) {
	from := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	days := Range(from, to)
	var keys []string
	for _, d := range days {
		keys = append(keys, Key(d))
	}
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}, keys)

	assert.Nil(t, Range(to, from))
	assert.Len(t, Range(from, from), 1)
}

func TestWithin(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)

	assert.True(t, Within(from, from, to))
	assert.True(t, Within(to.Add(15*time.Hour), from, to))
	assert.False(t, Within(to.AddDate(0, 0, 1), from, to))
	assert.Equal(t, 2, DaysBetween(from, to))
}
