package employee

import "context"

// EmployeeService exposes the directory to administrators, read-only.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListActive(ctx context.Context) ([]EmployeeResponse, error)
}
