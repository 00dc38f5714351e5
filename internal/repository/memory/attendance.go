package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type attendanceRepository struct {
	*Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{Store: s}
}

// withName copies the employee name in, the way the SQL join does. Caller holds mu.
func (a *attendanceRepository) withName(r attendance.Record) attendance.Record {
	if e, ok := a.employees[r.EmployeeID]; ok {
		name := e.FullName
		r.EmployeeName = &name
	}
	return r
}

func (a *attendanceRepository) findByDay(employeeID string, date time.Time) (attendance.Record, bool) {
	for _, r := range a.attendance {
		if r.EmployeeID == employeeID && r.WorkDate.Equal(utils.DateOf(date)) {
			return r, true
		}
	}
	return attendance.Record{}, false
}

func (a *attendanceRepository) insert(record attendance.Record) attendance.Record {
	record.ID = newID()
	record.WorkDate = utils.DateOf(record.WorkDate)
	record.CreatedAt = a.Now()
	record.UpdatedAt = record.CreatedAt
	a.attendance[record.ID] = record
	return a.withName(record)
}

func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.findByDay(record.EmployeeID, record.WorkDate); exists {
		return attendance.Record{}, attendance.ErrDuplicateWorkDate
	}
	return a.insert(record), nil
}

func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, record attendance.Record) (attendance.Record, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.findByDay(record.EmployeeID, record.WorkDate); exists {
		return attendance.Record{}, false, nil
	}
	return a.insert(record), true, nil
}

func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.attendance[id]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return a.withName(r), nil
}

func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.findByDay(employeeID, date)
	if !ok {
		return nil, nil
	}
	r = a.withName(r)
	return &r, nil
}

func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.attendance[record.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	record.CreatedAt = current.CreatedAt
	record.UpdatedAt = a.Now()
	record.EmployeeName = nil
	a.attendance[record.ID] = record
	return nil
}

func (a *attendanceRepository) collect(keep func(attendance.Record) bool) []attendance.Record {
	out := []attendance.Record{}
	for _, r := range a.attendance {
		if keep(r) {
			out = append(out, a.withName(r))
		}
	}
	sortNewestFirst(out, func(r attendance.Record) time.Time { return r.WorkDate })
	return out
}

func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.collect(func(r attendance.Record) bool {
		return r.EmployeeID == employeeID && !r.WorkDate.Before(start) && !r.WorkDate.After(end)
	}), nil
}

func (a *attendanceRepository) ListRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	records := a.collect(func(r attendance.Record) bool { return r.EmployeeID == employeeID })
	return page(records, 0, limit), nil
}

func matchesFilter(r attendance.Record, f attendance.AttendanceFilter) bool {
	if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && string(r.Status) != *f.Status {
		return false
	}
	if f.WorkDate != nil && *f.WorkDate != "" && utils.FormatDate(r.WorkDate) != *f.WorkDate {
		return false
	}
	if f.StartDate != nil && *f.StartDate != "" && utils.FormatDate(r.WorkDate) < *f.StartDate {
		return false
	}
	if f.EndDate != nil && *f.EndDate != "" && utils.FormatDate(r.WorkDate) > *f.EndDate {
		return false
	}
	return true
}

func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	records := a.collect(func(r attendance.Record) bool { return matchesFilter(r, filter) })
	return page(records, filter.Offset(), filter.Limit), int64(len(records)), nil
}

func (a *attendanceRepository) ListAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.collect(func(r attendance.Record) bool { return matchesFilter(r, filter) }), nil
}

func (a *attendanceRepository) CountByStatus(ctx context.Context) (map[attendance.Status]int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	counts := make(map[attendance.Status]int64)
	for _, r := range a.attendance {
		counts[r.Status]++
	}
	return counts, nil
}
