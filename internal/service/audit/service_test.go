package audit

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	recordA = "0190a0c0-0000-7000-8000-00000000a001"
	recordB = "0190a0c0-0000-7000-8000-00000000a002"
	adminID = "0190a0c0-0000-7000-8000-0000000000ad"
)

func strPtr(s string) *string { return &s }

func seededService(t *testing.T) audit.AuditService {
	t.Helper()
	ctx := context.Background()
	svc := NewAuditService(memory.NewAuditRepository(memory.NewStore()))

	require.NoError(t, svc.Record(ctx, audit.RecordTypeAttendance, recordA, "0190a0c0-0000-7000-8000-0000000000e1", audit.ActionCheckIn, nil))
	require.NoError(t, svc.Record(ctx, audit.RecordTypeAttendance, recordA, adminID, audit.ActionApprove, strPtr("ok")))
	require.NoError(t, svc.Record(ctx, audit.RecordTypeLeave, recordB, adminID, audit.ActionReject, strPtr("team offsite")))
	require.NoError(t, svc.Record(ctx, audit.RecordTypeAttendance, recordB, "", audit.ActionAbsence, nil))
	return svc
}

func TestAuditService_Record_DefaultsToSystemActor(t *testing.T) {
	svc := seededService(t)

	entries, err := svc.ListByRecord(context.Background(), audit.RecordTypeAttendance, recordB)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.SystemActor, entries[0].ActorID)
	assert.Equal(t, string(audit.ActionAbsence), entries[0].Action)
}

func TestAuditService_ListByRecord_SeparatesRecordTypes(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	trail, err := svc.ListByRecord(ctx, audit.RecordTypeAttendance, recordA)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, string(audit.ActionCheckIn), trail[0].Action)
	assert.Equal(t, string(audit.ActionApprove), trail[1].Action)

	leaveTrail, err := svc.ListByRecord(ctx, audit.RecordTypeLeave, recordB)
	require.NoError(t, err)
	require.Len(t, leaveTrail, 1)
	assert.Equal(t, "team offsite", *leaveTrail[0].Note)
}

func TestAuditService_List(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter audit.AuditFilter
		total  int64
	}{
		{name: "no filter", filter: audit.AuditFilter{}, total: 4},
		{name: "by actor", filter: audit.AuditFilter{ActorID: strPtr(adminID)}, total: 2},
		{name: "by record type", filter: audit.AuditFilter{RecordType: strPtr("leave_request")}, total: 1},
		{name: "by record and action", filter: audit.AuditFilter{RecordID: strPtr(recordA), Action: strPtr("approved")}, total: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, result.TotalCount)
			assert.Len(t, result.Entries, int(tt.total))
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, 20, result.Limit)
		})
	}
}

func TestAuditService_List_Paginates(t *testing.T) {
	svc := seededService(t)

	result, err := svc.List(context.Background(), audit.AuditFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Entries, 1)
}

func TestAuditService_List_InvalidFilter(t *testing.T) {
	svc := seededService(t)

	_, err := svc.List(context.Background(), audit.AuditFilter{RecordType: strPtr("payroll"), RecordID: strPtr("nope")})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "record_type")
	assert.Contains(t, fields, "record_id")
}
