package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
)

type employeeDirectory struct {
	*Store
}

func NewEmployeeDirectory(s *Store) employee.Directory {
	return &employeeDirectory{Store: s}
}

func (d *employeeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (d *employeeDirectory) ListActive(ctx context.Context) ([]employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []employee.Employee
	for _, e := range d.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (d *employeeDirectory) DepartmentAdminUserID(ctx context.Context, employeeID string) (*string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.employees[employeeID]
	if !ok || e.DepartmentID == nil {
		return nil, nil
	}
	dept, ok := d.departments[*e.DepartmentID]
	if !ok || dept.AdminEmployeeID == nil {
		return nil, nil
	}
	userID, ok := d.adminUsers[*dept.AdminEmployeeID]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}
