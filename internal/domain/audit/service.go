package audit

import "context"

// Recorder is what mutating services depend on.
type Recorder interface {
	Record(ctx context.Context, recordType RecordType, recordID, actorID string, action Action, note *string) error
}

type AuditService interface {
	Recorder
	ListByRecord(ctx context.Context, recordType RecordType, recordID string) ([]EntryResponse, error)
	List(ctx context.Context, filter AuditFilter) (ListEntryResponse, error)
}
