package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active employees with their working days.
	ListActive(ctx context.Context) ([]Employee, error)
}
