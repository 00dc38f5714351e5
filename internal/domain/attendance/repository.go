package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrDuplicateWorkDate when the employee already has a record for the work date.
	Create(ctx context.Context, record Record) (Record, error)

	// CreateIfAbsent inserts record unless one exists for the same employee and work date.
	// created is false when a row was already there.
	CreateIfAbsent(ctx context.Context, record Record) (saved Record, created bool, err error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	Update(ctx context.Context, record Record) error

	// ListByEmployee returns records in [start, end], newest first
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	ListRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]Record, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListAll is List without pagination, used by exports
	ListAll(ctx context.Context, filter AttendanceFilter) ([]Record, error)

	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
