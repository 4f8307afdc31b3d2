package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Largest serial a spreadsheet can hold (9999-12-31).
const maxDateSerial = 2958465

var dayFirstLayouts = []string{"2/1/2006", "2-1-2006", "2.1.2006"}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// IsPlaceholder reports whether raw stands for "no value" in exported sheets.
func IsPlaceholder(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "-", "--", "n/a", "na", "null":
		return true
	}
	return false
}

// NormalizeDate parses an import date cell. It accepts the canonical
// YYYY-MM-DD form, a spreadsheet date serial, or a day-first D/M/YYYY
// string, and returns the date as midnight UTC.
func NormalizeDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if IsPlaceholder(raw) {
		return time.Time{}, false
	}

	if d, err := dateutil.Parse(raw); err == nil {
		return d, true
	}

	if serial, err := decimal.NewFromString(raw); err == nil {
		f, _ := serial.Float64()
		if f < 1 || f > maxDateSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, false
		}
		return dateutil.Truncate(t), true
	}

	for _, layout := range dayFirstLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// CanonicalDate returns the YYYY-MM-DD form of raw. Normalizing a
// canonical value returns it unchanged.
func CanonicalDate(raw string) (string, bool) {
	d, ok := NormalizeDate(raw)
	if !ok {
		return "", false
	}
	return dateutil.Key(d), true
}

// NormalizeTime converts an import time cell to HH:MM. It accepts 24-hour
// HH:MM and HH:MM:SS, or a fraction of a day in [0, 1) rounded to the
// nearest minute. Placeholders yield "" and true. Values it cannot read
// are returned trimmed with false.
func NormalizeTime(raw string) (string, bool) {
	return NormalizeTimeOn(raw, time.Time{})
}

// NormalizeTimeOn is NormalizeTime for a row dated date. It also accepts a
// spreadsheet date-time serial, but only when its date part is that date.
func NormalizeTimeOn(raw string, date time.Time) (string, bool) {
	raw = strings.TrimSpace(raw)
	if IsPlaceholder(raw) {
		return "", true
	}

	if value, err := decimal.NewFromString(raw); err == nil {
		return fromSerial(raw, value, date)
	}

	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, false
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if m[3] != "" {
		if sec, _ := strconv.Atoi(m[3]); sec >= 60 {
			return raw, false
		}
	}
	return checkedClock(raw, h, minute)
}

func fromSerial(raw string, value decimal.Decimal, date time.Time) (string, bool) {
	if value.IsNegative() {
		return raw, false
	}

	whole := value.Floor()
	if !whole.IsZero() {
		// The day part must be the row's date; a bare day count has no time.
		if date.IsZero() || value.Equal(whole) || whole.IntPart() > maxDateSerial {
			return raw, false
		}
		day, err := excelize.ExcelDateToTime(float64(whole.IntPart()), false)
		if err != nil || !dateutil.Truncate(day).Equal(dateutil.Truncate(date)) {
			return raw, false
		}
	}

	minutes := value.Sub(whole).Mul(decimal.NewFromInt(24 * 60)).Round(0).IntPart()
	if minutes >= 24*60 {
		return raw, false
	}
	return checkedClock(raw, int(minutes/60), int(minutes%60))
}

func checkedClock(raw string, hour, minute int) (string, bool) {
	clock := fmt.Sprintf("%02d:%02d", hour, minute)
	if !validator.IsValidTimeOfDay(clock) {
		return raw, false
	}
	return clock, true
}

// clockMinutes returns minutes after midnight for an HH:MM value.
func clockMinutes(clock string) (int, bool) {
	if !validator.IsValidTimeOfDay(clock) {
		return 0, false
	}
	h, _ := strconv.Atoi(clock[:2])
	m, _ := strconv.Atoi(clock[3:])
	return h*60 + m, true
}
