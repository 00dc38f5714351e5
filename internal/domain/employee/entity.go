package employee

import (
	"time"
)

// Employee is the directory's view of a person the engine tracks.
type Employee struct {
	ID               string
	UserID           *string
	FullName         string
	Email            string
	DepartmentID     *string
	HireDate         *time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}

type Department struct {
	ID              string
	Name            string
	AdminEmployeeID *string
}
