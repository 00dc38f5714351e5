package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.work_date, a.check_in, a.check_out,
	a.required_work_hours, a.work_hours, a.overtime_hours,
	a.expected_check_in, a.expected_check_out,
	a.reason, a.admin_note, a.holiday_name, a.status,
	a.created_at, a.updated_at,
	e.full_name`

const attendanceFrom = `
	FROM attendance_records a
	LEFT JOIN employees e ON e.id = a.employee_id`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.WorkDate, &r.CheckIn, &r.CheckOut,
		&r.RequiredWorkHours, &r.WorkHours, &r.OvertimeHours,
		&r.ExpectedCheckIn, &r.ExpectedCheckOut,
		&r.Reason, &r.AdminNote, &r.HolidayName, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName,
	)
	return r, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		r, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

const insertAttendance = `
	INSERT INTO attendance_records (
		id, employee_id, work_date, check_in, check_out,
		required_work_hours, work_hours, overtime_hours,
		expected_check_in, expected_check_out,
		reason, admin_note, holiday_name, status
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
	)`

func attendanceArgs(r attendance.Record) []interface{} {
	return []interface{}{
		r.ID, r.EmployeeID, r.WorkDate, r.CheckIn, r.CheckOut,
		r.RequiredWorkHours, r.WorkHours, r.OvertimeHours,
		r.ExpectedCheckIn, r.ExpectedCheckOut,
		r.Reason, r.AdminNote, r.HolidayName, r.Status,
	}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate id: %w", err)
	}
	record.ID = id.String()

	err = q.QueryRow(ctx, insertAttendance+` RETURNING created_at, updated_at`, attendanceArgs(record)...).
		Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateWorkDate
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, record attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to generate id: %w", err)
	}
	record.ID = id.String()

	tag, err := q.Exec(ctx, insertAttendance+` ON CONFLICT (employee_id, work_date) DO NOTHING`, attendanceArgs(record)...)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Record{}, false, nil
	}
	return record, true, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`

	record, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.work_date = $2
		FOR UPDATE OF a`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &record, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in = $2,
			check_out = $3,
			required_work_hours = $4,
			work_hours = $5,
			overtime_hours = $6,
			expected_check_in = $7,
			expected_check_out = $8,
			reason = $9,
			admin_note = $10,
			holiday_name = $11,
			status = $12,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.CheckIn,
		record.CheckOut,
		record.RequiredWorkHours,
		record.WorkHours,
		record.OvertimeHours,
		record.ExpectedCheckIn,
		record.ExpectedCheckOut,
		record.Reason,
		record.AdminNote,
		record.HolidayName,
		record.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.work_date BETWEEN $2 AND $3
		ORDER BY a.work_date DESC`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// ListRecentByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1
		ORDER BY a.work_date DESC
		LIMIT $2`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance: %w", err)
	}
	return collectAttendance(rows)
}

func attendanceWhere(filter attendance.AttendanceFilter) (string, []interface{}) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.WorkDate != nil && *filter.WorkDate != "" {
		where += fmt.Sprintf(" AND a.work_date = $%d", argIdx)
		args = append(args, *filter.WorkDate)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
	}

	return where, args
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	where, args := attendanceWhere(filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records a WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s
		ORDER BY a.work_date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d`,
		attendanceColumns, attendanceFrom, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	records, err := collectAttendance(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	where, args := attendanceWhere(filter)
	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE ` + where + `
		ORDER BY a.work_date DESC, e.full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context) (map[attendance.Status]int64, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM attendance_records GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int64)
	for rows.Next() {
		var status attendance.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
