package audit

import (
	"context"
	"fmt"
	"math"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(repo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: repo}
}

// Record implements audit.Recorder.
func (s *AuditServiceImpl) Record(ctx context.Context, recordType audit.RecordType, recordID, actorID string, action audit.Action, note *string) error {
	if actorID == "" {
		actorID = audit.SystemActor
	}

	_, err := s.AuditRepository.Append(ctx, audit.Entry{
		RecordType: recordType,
		RecordID:   recordID,
		ActorID:    actorID,
		Action:     action,
		Note:       note,
	})
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// ListByRecord implements audit.AuditService.
func (s *AuditServiceImpl) ListByRecord(ctx context.Context, recordType audit.RecordType, recordID string) ([]audit.EntryResponse, error) {
	entries, err := s.AuditRepository.ListByRecord(ctx, recordType, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	out := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, audit.ToResponse(e))
	}
	return out, nil
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, filter audit.AuditFilter) (audit.ListEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListEntryResponse{}, err
	}

	entries, total, err := s.AuditRepository.List(ctx, filter)
	if err != nil {
		return audit.ListEntryResponse{}, fmt.Errorf("failed to list audit entries: %w", err)
	}

	resp := audit.ListEntryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    make([]audit.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, audit.ToResponse(e))
	}
	return resp, nil
}
