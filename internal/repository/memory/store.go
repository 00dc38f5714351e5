// Package memory holds map-backed implementations of the domain repositories.
// They share one Store so joins such as employee names resolve like the SQL versions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	employees     map[string]employee.Employee
	departments   map[string]employee.Department
	adminUsers    map[string]string // employee id -> user id
	attendance    map[string]attendance.Record
	holidays      map[string]holiday.Holiday
	leaveTypes    map[string]leave.LeaveType
	leaveRequests map[string]leave.LeaveRequest
	audit         []audit.Entry

	// Now stamps created_at/updated_at. Defaults to time.Now.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		departments:   make(map[string]employee.Department),
		adminUsers:    make(map[string]string),
		attendance:    make(map[string]attendance.Record),
		holidays:      make(map[string]holiday.Holiday),
		leaveTypes:    make(map[string]leave.LeaveType),
		leaveRequests: make(map[string]leave.LeaveRequest),
		Now:           time.Now,
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AddEmployee seeds the directory. A blank ID is generated.
func (s *Store) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	if e.EmploymentStatus == "" {
		e.EmploymentStatus = employee.EmploymentStatusActive
	}
	s.employees[e.ID] = e
	if e.UserID != nil {
		s.adminUsers[e.ID] = *e.UserID
	}
	return e
}

// AddDepartment seeds a department. A blank ID is generated.
func (s *Store) AddDepartment(d employee.Department) employee.Department {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = newID()
	}
	s.departments[d.ID] = d
	return d
}

// AuditEntries returns a copy of everything appended so far.
func (s *Store) AuditEntries() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Entry(nil), s.audit...)
}

// TxManager runs fn directly. Each repository call is atomic on its own.
type TxManager struct{}

func (TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func sortNewestFirst[T any](items []T, key func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]).After(key(items[j]))
	})
}
