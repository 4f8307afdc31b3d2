package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListInRange returns one-off holidays dated inside [from, to] plus every
	// recurring holiday that started on or before to. Inactive rows are included.
	ListInRange(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
}
