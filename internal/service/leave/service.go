package leave

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type LeaveServiceImpl struct {
	tx database.TxManager
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	directory   employee.Directory
	audit       audit.Recorder
	clock       clock.Clock
	entitlement *EntitlementCalculator
}

func NewLeaveService(
	tx database.TxManager,
	typeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	directory employee.Directory,
	recorder audit.Recorder,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    typeRepo,
		LeaveRequestRepository: requestRepo,
		directory:              directory,
		audit:                  recorder,
		clock:                  clk,
		entitlement:            NewEntitlementCalculator(requestRepo, directory),
	}
}

func (s *LeaveServiceImpl) getType(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	out := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, leave.ToTypeResponse(t))
	}
	return out, nil
}

// GetType implements leave.LeaveService.
func (s *LeaveServiceImpl) GetType(ctx context.Context, id string) (leave.LeaveTypeResponse, error) {
	lt, err := s.getType(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.ToTypeResponse(lt), nil
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := s.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    leave.Category(req.Category),
		Status:      leave.TypeStatus(req.Status),
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return leave.ToTypeResponse(created), nil
}

// UpdateType implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateType(ctx context.Context, id string, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	lt, err := s.getType(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if req.Name != nil {
		lt.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		lt.Description = req.Description
	}
	if req.Category != nil {
		lt.Category = leave.Category(*req.Category)
	}
	if req.Status != nil {
		lt.Status = leave.TypeStatus(*req.Status)
	}

	if err := s.LeaveTypeRepository.Update(ctx, lt); err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return leave.ToTypeResponse(lt), nil
}

// GetEntitlement implements leave.LeaveService.
func (s *LeaveServiceImpl) GetEntitlement(ctx context.Context, employeeID string, year int) (leave.Entitlement, error) {
	if err := utils.ValidateMonthYear(1, year); err != nil {
		return leave.Entitlement{}, err
	}
	return s.entitlement.Calculate(ctx, employeeID, year)
}

// GetSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) GetSummary(ctx context.Context, employeeID string, year int) (leave.LeaveSummaryResponse, error) {
	if err := utils.ValidateMonthYear(1, year); err != nil {
		return leave.LeaveSummaryResponse{}, err
	}

	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveSummaryResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveSummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	ent, err := s.entitlement.CalculateFor(ctx, emp, year)
	if err != nil {
		return leave.LeaveSummaryResponse{}, err
	}

	lo, hi := utils.YearRange(year)
	requests, err := s.LeaveRequestRepository.ListByEmployeeBetween(ctx, employeeID, lo, hi)
	if err != nil {
		return leave.LeaveSummaryResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	summary := leave.LeaveSummaryResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Year:         year,
		Entitlement:  ent.Entitled,
		Used:         ent.Used,
		Remaining:    ent.Remaining,
	}

	byType := make(map[string]*leave.TypeBreakdown)
	for _, r := range requests {
		from, to, ok := utils.Clip(r.FromDate, r.ToDate, lo, hi)
		if !ok {
			continue
		}
		days := utils.InclusiveDays(from, to)

		b, found := byType[r.LeaveTypeID]
		if !found {
			b = &leave.TypeBreakdown{LeaveTypeID: r.LeaveTypeID}
			if r.LeaveTypeName != nil {
				b.LeaveTypeName = *r.LeaveTypeName
			}
			if r.LeaveTypeCategory != nil {
				b.Category = *r.LeaveTypeCategory
			}
			byType[r.LeaveTypeID] = b
		}
		b.TotalDays += days

		switch r.Status {
		case leave.RequestStatusPending:
			summary.PendingDays += days
			b.PendingDays += days
		case leave.RequestStatusApproved:
			summary.ApprovedDays += days
			b.ApprovedDays += days
		case leave.RequestStatusRejected:
			summary.RejectedDays += days
			b.RejectedDays += days
		}
	}

	summary.ByType = make([]leave.TypeBreakdown, 0, len(byType))
	for _, b := range byType {
		summary.ByType = append(summary.ByType, *b)
	}
	slices.SortFunc(summary.ByType, func(a, b leave.TypeBreakdown) int {
		return strings.Compare(a.LeaveTypeName, b.LeaveTypeName)
	})

	return summary, nil
}

// ExportSummaryPDF implements leave.LeaveService.
func (s *LeaveServiceImpl) ExportSummaryPDF(ctx context.Context, employeeID string, year int) ([]byte, error) {
	summary, err := s.GetSummary(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	data, err := export.LeaveSummaryPDF(summary, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to render leave summary: %w", err)
	}
	return data, nil
}
