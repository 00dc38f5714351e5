package employee

import "context"

// Directory is the read-only employee lookup the engine consumes.
type Directory interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)

	// DepartmentAdminUserID resolves the user account of the admin of the
	// employee's department. Nil when the department, its admin or the
	// admin's account is missing.
	DepartmentAdminUserID(ctx context.Context, employeeID string) (*string, error)
}
