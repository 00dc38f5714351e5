package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

// EntitlementCalculator derives annual-leave balances from approved requests.
// Balances are recomputed on every call, never cached.
type EntitlementCalculator struct {
	requests  leave.LeaveRequestRepository
	directory employee.Directory
}

func NewEntitlementCalculator(requests leave.LeaveRequestRepository, directory employee.Directory) *EntitlementCalculator {
	return &EntitlementCalculator{
		requests:  requests,
		directory: directory,
	}
}

func (c *EntitlementCalculator) Calculate(ctx context.Context, employeeID string, year int) (leave.Entitlement, error) {
	emp, err := c.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.Entitlement{}, employee.ErrEmployeeNotFound
		}
		return leave.Entitlement{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return c.CalculateFor(ctx, emp, year)
}

func (c *EntitlementCalculator) CalculateFor(ctx context.Context, emp employee.Employee, year int) (leave.Entitlement, error) {
	start, end := utils.YearRange(year)
	approved, err := c.requests.ListApprovedByCategory(ctx, emp.ID, leave.CategoryAnnual, start, end)
	if err != nil {
		return leave.Entitlement{}, fmt.Errorf("failed to list approved annual leave: %w", err)
	}
	return leave.NewEntitlement(emp.HireDate, year, approved), nil
}

// Check fails with *leave.EntitlementError when days exceeds the balance for year.
func (c *EntitlementCalculator) Check(ctx context.Context, emp employee.Employee, year, days int) error {
	ent, err := c.CalculateFor(ctx, emp, year)
	if err != nil {
		return err
	}
	if days > ent.Remaining {
		return &leave.EntitlementError{Requested: days, Remaining: ent.Remaining}
	}
	return nil
}
