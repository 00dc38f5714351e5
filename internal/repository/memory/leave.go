package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type leaveTypeRepository struct {
	*Store
}

func NewLeaveTypeRepository(s *Store) leave.LeaveTypeRepository {
	return &leaveTypeRepository{Store: s}
}

func (r *leaveTypeRepository) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lt.ID = newID()
	lt.CreatedAt = r.Now()
	lt.UpdatedAt = lt.CreatedAt
	r.leaveTypes[lt.ID] = lt
	return lt, nil
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lt, ok := r.leaveTypes[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *leaveTypeRepository) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []leave.LeaveType{}
	for _, lt := range r.leaveTypes {
		if activeOnly && !lt.IsActive() {
			continue
		}
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *leaveTypeRepository) Update(ctx context.Context, lt leave.LeaveType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.leaveTypes[lt.ID]
	if !ok {
		return leave.ErrLeaveTypeNotFound
	}
	lt.CreatedAt = current.CreatedAt
	lt.UpdatedAt = r.Now()
	r.leaveTypes[lt.ID] = lt
	return nil
}

type leaveRequestRepository struct {
	*Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{Store: s}
}

// join fills the type and employee columns. Caller holds mu.
func (r *leaveRequestRepository) join(req leave.LeaveRequest) leave.LeaveRequest {
	req.LeaveTypeName, req.LeaveTypeCategory, req.EmployeeName = nil, nil, nil
	if lt, ok := r.leaveTypes[req.LeaveTypeID]; ok {
		name, category := lt.Name, lt.Category
		req.LeaveTypeName, req.LeaveTypeCategory = &name, &category
	}
	if e, ok := r.employees[req.EmployeeID]; ok {
		name := e.FullName
		req.EmployeeName = &name
	}
	return req
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = newID()
	request.FromDate, request.ToDate = utils.DateOf(request.FromDate), utils.DateOf(request.ToDate)
	request.CreatedAt = r.Now()
	request.UpdatedAt = request.CreatedAt
	r.leaveRequests[request.ID] = request
	return r.join(request), nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.leaveRequests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.join(req), nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.leaveRequests[request.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	request.FromDate, request.ToDate = utils.DateOf(request.FromDate), utils.DateOf(request.ToDate)
	request.CreatedAt = current.CreatedAt
	request.UpdatedAt = r.Now()
	r.leaveRequests[request.ID] = request
	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leaveRequests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.leaveRequests, id)
	return nil
}

func (r *leaveRequestRepository) collect(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	out := []leave.LeaveRequest{}
	for _, req := range r.leaveRequests {
		req = r.join(req)
		if keep(req) {
			out = append(out, req)
		}
	}
	sortNewestFirst(out, func(req leave.LeaveRequest) time.Time { return req.CreatedAt })
	return out
}

func intersects(req leave.LeaveRequest, from, to *time.Time) bool {
	if to != nil && req.FromDate.After(*to) {
		return false
	}
	if from != nil && req.ToDate.Before(*from) {
		return false
	}
	return true
}

func (r *leaveRequestRepository) ListOpenByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(req leave.LeaveRequest) bool {
		return req.EmployeeID == employeeID && req.Status != leave.RequestStatusRejected
	}), nil
}

func (r *leaveRequestRepository) ListApprovedByCategory(ctx context.Context, employeeID string, category leave.Category, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(req leave.LeaveRequest) bool {
		return req.EmployeeID == employeeID &&
			req.Status == leave.RequestStatusApproved &&
			req.LeaveTypeCategory != nil && *req.LeaveTypeCategory == category &&
			intersects(req, &from, &to)
	}), nil
}

func (r *leaveRequestRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.collect(func(req leave.LeaveRequest) bool {
		return req.EmployeeID == employeeID && intersects(req, &from, &to)
	}), nil
}

func matchesLeave(req leave.LeaveRequest, status, leaveTypeID, employeeID *string, from, to *time.Time) bool {
	if status != nil && string(req.Status) != *status {
		return false
	}
	if leaveTypeID != nil && req.LeaveTypeID != *leaveTypeID {
		return false
	}
	if employeeID != nil && req.EmployeeID != *employeeID {
		return false
	}
	return intersects(req, from, to)
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, filter leave.MyLeaveFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.collect(func(req leave.LeaveRequest) bool {
		return matchesLeave(req, filter.Status, filter.LeaveTypeID, &employeeID, filter.From, filter.To)
	})
	if filter.Limit != nil {
		out = page(out, 0, *filter.Limit)
	}
	return out, nil
}

func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.collect(func(req leave.LeaveRequest) bool {
		return matchesLeave(req, filter.Status, filter.LeaveTypeID, filter.EmployeeID, filter.From, filter.To)
	})
	return page(out, filter.Offset(), filter.Limit), int64(len(out)), nil
}
