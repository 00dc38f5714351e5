package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
)

type auditRepository struct {
	*Store
}

func NewAuditRepository(s *Store) audit.AuditRepository {
	return &auditRepository{Store: s}
}

func (a *auditRepository) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry.ID = newID()
	entry.CreatedAt = a.Now()
	a.audit = append(a.audit, entry)
	return entry, nil
}

func (a *auditRepository) ListByRecord(ctx context.Context, recordType audit.RecordType, recordID string) ([]audit.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := []audit.Entry{}
	for _, e := range a.audit {
		if e.RecordType == recordType && e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *auditRepository) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Entry, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := []audit.Entry{}
	for _, e := range a.audit {
		switch {
		case filter.RecordType != nil && string(e.RecordType) != *filter.RecordType:
			continue
		case filter.RecordID != nil && e.RecordID != *filter.RecordID:
			continue
		case filter.ActorID != nil && e.ActorID != *filter.ActorID:
			continue
		case filter.Action != nil && string(e.Action) != *filter.Action:
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out, func(e audit.Entry) time.Time { return e.CreatedAt })

	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * filter.Limit
	}
	return page(out, offset, filter.Limit), int64(len(out)), nil
}
