package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidWorkingDay = errors.New("working day must be a weekday index between 0 and 6")
)
