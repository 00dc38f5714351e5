package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type Category string

const (
	CategoryAnnual       Category = "annual"
	CategorySick         Category = "sick"
	CategoryUnpaid       Category = "unpaid"
	CategorySpecial      Category = "special"
	CategoryCompensatory Category = "compensatory"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAnnual, CategorySick, CategoryUnpaid, CategorySpecial, CategoryCompensatory:
		return true
	}
	return false
}

type TypeStatus string

const (
	TypeStatusActive   TypeStatus = "active"
	TypeStatusInactive TypeStatus = "inactive"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	Category    Category
	Status      TypeStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t LeaveType) IsActive() bool {
	return t.Status == TypeStatusActive
}

// CountsAgainstEntitlement is true for the types drawn from the annual balance.
func (t LeaveType) CountsAgainstEntitlement() bool {
	return t.Category == CategoryAnnual
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Reason      *string
	FromDate    time.Time
	ToDate      time.Time

	Status          RequestStatus
	AdminID         *string
	ProcessedAt     *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName     *string
	LeaveTypeCategory *Category
	EmployeeName      *string
}

// Days is the inclusive calendar-day count of the request.
func (r LeaveRequest) Days() int {
	return utils.InclusiveDays(r.FromDate, r.ToDate)
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// Entitlement is an employee's annual-leave balance for one year.
type Entitlement struct {
	Year      int
	Entitled  int
	Used      int
	Remaining int
}

// AnnualEntitlementDays is the yearly allowance for a full year of service.
const AnnualEntitlementDays = 12

// EntitledDays prorates the yearly allowance by hire month.
// Unknown hire dates get the full allowance; hires after year get nothing.
func EntitledDays(hireDate *time.Time, year int) int {
	if hireDate == nil {
		return AnnualEntitlementDays
	}
	switch hireYear := hireDate.Year(); {
	case hireYear < year:
		return AnnualEntitlementDays
	case hireYear == year:
		return 13 - int(hireDate.Month())
	default:
		return 0
	}
}

// UsedDays sums the days of approved requests falling inside year, counting
// only days on or after the hire date.
func UsedDays(approved []LeaveRequest, hireDate *time.Time, year int) int {
	lo, hi := utils.YearRange(year)
	if hireDate != nil {
		if hd := utils.DateOf(*hireDate); hd.After(lo) {
			lo = hd
		}
	}

	used := 0
	for _, r := range approved {
		if r.Status != RequestStatusApproved {
			continue
		}
		from, to, ok := utils.Clip(r.FromDate, r.ToDate, lo, hi)
		if !ok {
			continue
		}
		used += utils.InclusiveDays(from, to)
	}
	return used
}

func NewEntitlement(hireDate *time.Time, year int, approved []LeaveRequest) Entitlement {
	e := Entitlement{
		Year:     year,
		Entitled: EntitledDays(hireDate, year),
		Used:     UsedDays(approved, hireDate, year),
	}
	e.Remaining = max(0, e.Entitled-e.Used)
	return e
}
