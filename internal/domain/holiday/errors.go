package holiday

import "errors"

var (
	ErrInvalidRecurrence = errors.New("invalid holiday recurrence rule")
)
