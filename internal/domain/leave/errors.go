package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeInactive            = errors.New("leave type is not active")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrFromDateInPast               = errors.New("from_date cannot be in the past")
	ErrLeaveOverlap                 = errors.New("leave request overlaps an existing request")
	ErrNotRequestOwner              = errors.New("you can only modify your own leave requests")
	ErrInsufficientQuota            = errors.New("insufficient annual leave balance")
)

// EntitlementError reports an annual-leave request larger than the remaining balance.
type EntitlementError struct {
	Requested int
	Remaining int
}

func (e *EntitlementError) Error() string {
	return fmt.Sprintf("insufficient annual leave balance: requested %d days, remaining %d days", e.Requested, e.Remaining)
}

func (e *EntitlementError) Is(target error) bool {
	return target == ErrInsufficientQuota
}
