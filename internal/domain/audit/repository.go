package audit

import "context"

type AuditRepository interface {
	Append(ctx context.Context, entry Entry) (Entry, error)

	// ListByRecord returns the history of one record, oldest first
	ListByRecord(ctx context.Context, recordType RecordType, recordID string) ([]Entry, error)
	List(ctx context.Context, filter AuditFilter) ([]Entry, int64, error)
}
