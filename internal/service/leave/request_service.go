package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

func (s *LeaveServiceImpl) getRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

// validateSpan runs the checks shared by submit and update. excludeID is the
// request being edited, left out of the overlap scan.
func (s *LeaveServiceImpl) validateSpan(ctx context.Context, emp employee.Employee, req leave.CreateLeaveRequest, excludeID string) (leave.LeaveType, error) {
	today := utils.DateOf(s.clock.Now())
	if req.From.Before(today) {
		return leave.LeaveType{}, leave.ErrFromDateInPast
	}

	lt, err := s.getType(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if !lt.IsActive() {
		return leave.LeaveType{}, leave.ErrLeaveTypeInactive
	}

	// Only pending requests are editable and usage counts approved ones, so
	// the edited request never needs adding back to the balance.
	if lt.CountsAgainstEntitlement() {
		days := utils.InclusiveDays(req.From, req.To)
		if err := s.entitlement.Check(ctx, emp, req.From.Year(), days); err != nil {
			return leave.LeaveType{}, err
		}
	}

	open, err := s.LeaveRequestRepository.ListOpenByEmployee(ctx, emp.ID)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	for _, other := range open {
		if other.ID == excludeID || other.Status == leave.RequestStatusRejected {
			continue
		}
		if utils.Overlaps(req.From, req.To, other.FromDate, other.ToDate) {
			return leave.LeaveType{}, leave.ErrLeaveOverlap
		}
	}

	return lt, nil
}

func (s *LeaveServiceImpl) getEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func cleanReason(reason *string) *string {
	if validator.IsBlank(reason) {
		return nil
	}
	r := strings.TrimSpace(*reason)
	return &r
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lt, err := s.validateSpan(ctx, emp, req, "")
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Routing only: the department admin sees the request first, any admin may decide it.
	adminID, err := s.directory.DepartmentAdminUserID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to resolve department admin: %w", err)
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Reason:      cleanReason(req.Reason),
			FromDate:    req.From,
			ToDate:      req.To,
			Status:      leave.RequestStatusPending,
			AdminID:     adminID,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return s.audit.Record(ctx, audit.RecordTypeLeave, created.ID, employeeID, audit.ActionSubmit, nil)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &lt.Name
	created.LeaveTypeCategory = &lt.Category
	return leave.ToRequestResponse(created), nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, employeeID, requestID string, req leave.UpdateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	existing, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if existing.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	if !existing.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lt, err := s.validateSpan(ctx, emp, leave.CreateLeaveRequest(req), existing.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	adminID, err := s.directory.DepartmentAdminUserID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to resolve department admin: %w", err)
	}

	existing.LeaveTypeID = lt.ID
	existing.FromDate = req.From
	existing.ToDate = req.To
	existing.Reason = cleanReason(req.Reason)
	existing.AdminID = adminID

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.LeaveRequestRepository.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return s.audit.Record(ctx, audit.RecordTypeLeave, existing.ID, employeeID, audit.ActionUpdate, nil)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	existing.LeaveTypeName = &lt.Name
	existing.LeaveTypeCategory = &lt.Category
	return leave.ToRequestResponse(existing), nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, employeeID, requestID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if existing.EmployeeID != employeeID {
			return leave.ErrNotRequestOwner
		}
		if !existing.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if err := s.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
			return fmt.Errorf("failed to delete leave request: %w", err)
		}
		return s.audit.Record(ctx, audit.RecordTypeLeave, requestID, employeeID, audit.ActionDelete, nil)
	})
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string, filter leave.MyLeaveFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.ToRequestResponses(requests), nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToRequestResponse(request), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, page, limit int) (leave.ListLeaveRequestResponse, error) {
	status := string(leave.RequestStatusPending)
	filter := leave.LeaveFilter{Page: page, Limit: limit}
	filter.Status = &status
	return s.ListAll(ctx, filter)
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewListResponse(requests, total, filter.Page, filter.Limit), nil
}

// decide moves a pending request to its final status.
func (s *LeaveServiceImpl) decide(ctx context.Context, adminID, requestID string, status leave.RequestStatus, reason *string) (leave.LeaveRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = status
	request.AdminID = &adminID
	request.ProcessedAt = &now

	action := audit.ActionApprove
	if status == leave.RequestStatusRejected {
		request.RejectionReason = reason
		action = audit.ActionReject
	}

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	if err := s.audit.Record(ctx, audit.RecordTypeLeave, request.ID, adminID, action, reason); err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (s *LeaveServiceImpl) decideOne(ctx context.Context, adminID, requestID string, status leave.RequestStatus, reason *string) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.decide(ctx, adminID, requestID, status, reason)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToRequestResponse(result), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, adminID, requestID string) (leave.LeaveRequestResponse, error) {
	return s.decideOne(ctx, adminID, requestID, leave.RequestStatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, adminID, requestID string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	return s.decideOne(ctx, adminID, requestID, leave.RequestStatusRejected, &reason)
}

// BatchApprove implements leave.LeaveService.
func (s *LeaveServiceImpl) BatchApprove(ctx context.Context, adminID string, req leave.BatchApproveLeaveRequest) ([]leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.batch(ctx, adminID, req.RequestIDs, leave.RequestStatusApproved, nil), nil
}

// BatchReject implements leave.LeaveService.
func (s *LeaveServiceImpl) BatchReject(ctx context.Context, adminID string, req leave.BatchRejectLeaveRequest) ([]leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	return s.batch(ctx, adminID, req.RequestIDs, leave.RequestStatusRejected, &reason), nil
}

func (s *LeaveServiceImpl) batch(ctx context.Context, adminID string, ids []string, status leave.RequestStatus, reason *string) []leave.LeaveRequestResponse {
	start := time.Now()
	results := make([]leave.LeaveRequestResponse, 0, len(ids))
	for _, id := range ids {
		resp, err := s.decideOne(ctx, adminID, id, status, reason)
		switch {
		case err == nil:
			results = append(results, resp)
		case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
			slog.Warn("Skipping leave request, not pending", "status", status, "request_id", id)
		default:
			slog.Error("Batch leave decision failed", "status", status, "request_id", id, "error", err)
		}
	}

	slog.Info("Batch leave decision finished",
		"status", status,
		"requested", len(ids),
		"changed", len(results),
		"duration", time.Since(start),
	)
	return results
}
