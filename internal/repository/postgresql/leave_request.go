package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.reason, lr.from_date, lr.to_date,
	lr.status, lr.admin_id, lr.processed_at, lr.rejection_reason,
	lr.created_at, lr.updated_at,
	lt.name, lt.category, e.full_name`

const leaveRequestFrom = `
	FROM leave_requests lr
	LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
	LEFT JOIN employees e ON e.id = lr.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.LeaveTypeID, &r.Reason, &r.FromDate, &r.ToDate,
		&r.Status, &r.AdminID, &r.ProcessedAt, &r.RejectionReason,
		&r.CreatedAt, &r.UpdatedAt,
		&r.LeaveTypeName, &r.LeaveTypeCategory, &r.EmployeeName,
	)
	return r, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		r, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate id: %w", err)
	}
	request.ID = id.String()

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, reason, from_date, to_date, status, admin_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.LeaveTypeID,
		request.Reason,
		request.FromDate,
		request.ToDate,
		request.Status,
		request.AdminID,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+leaveRequestFrom+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			leave_type_id = $2,
			reason = $3,
			from_date = $4,
			to_date = $5,
			status = $6,
			admin_id = $7,
			processed_at = $8,
			rejection_reason = $9,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		request.ID,
		request.LeaveTypeID,
		request.Reason,
		request.FromDate,
		request.ToDate,
		request.Status,
		request.AdminID,
		request.ProcessedAt,
		request.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// ListOpenByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOpenByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.employee_id = $1 AND lr.status <> 'rejected'
		ORDER BY lr.from_date`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// ListApprovedByCategory implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByCategory(ctx context.Context, employeeID string, category leave.Category, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.employee_id = $1
		  AND lr.status = 'approved'
		  AND lt.category = $2
		  AND lr.from_date <= $4
		  AND lr.to_date >= $3
		ORDER BY lr.from_date`

	rows, err := q.Query(ctx, query, employeeID, category, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return collectLeaveRequests(rows)
}

// ListByEmployeeBetween implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + `
		WHERE lr.employee_id = $1 AND lr.from_date <= $3 AND lr.to_date >= $2
		ORDER BY lr.from_date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

type leaveWhere struct {
	clause string
	args   []interface{}
}

func (w *leaveWhere) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clause += fmt.Sprintf(" AND "+cond, len(w.args))
}

func buildLeaveWhere(status, leaveTypeID, employeeID *string, from, to *time.Time) leaveWhere {
	w := leaveWhere{clause: "1=1"}
	if employeeID != nil && *employeeID != "" {
		w.add("lr.employee_id = $%d", *employeeID)
	}
	if status != nil && *status != "" {
		w.add("lr.status = $%d", *status)
	}
	if leaveTypeID != nil && *leaveTypeID != "" {
		w.add("lr.leave_type_id = $%d", *leaveTypeID)
	}
	// Requests intersecting the window
	if from != nil {
		w.add("lr.to_date >= $%d", *from)
	}
	if to != nil {
		w.add("lr.from_date <= $%d", *to)
	}
	return w
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.MyLeaveFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	w := buildLeaveWhere(filter.Status, filter.LeaveTypeID, &employeeID, filter.From, filter.To)
	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + ` WHERE ` + w.clause + `
		ORDER BY lr.created_at DESC`
	if filter.Limit != nil {
		w.args = append(w.args, *filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}

	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	w := buildLeaveWhere(filter.Status, filter.LeaveTypeID, filter.EmployeeID, filter.From, filter.To)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests lr WHERE `+w.clause, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	args := append(w.args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT %s %s WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d`,
		leaveRequestColumns, leaveRequestFrom, w.clause, len(w.args)+1, len(w.args)+2)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}
