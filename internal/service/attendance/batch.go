package attendance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
)

// BatchApprove implements attendance.AttendanceService.
// Each record commits on its own; skipped and failed ids are logged, never returned.
func (s *AttendanceServiceImpl) BatchApprove(ctx context.Context, adminID string, req attendance.BatchApproveRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	note := trimmed(req.AdminNote)
	return s.batch(ctx, "approve", req.RecordIDs, func(ctx context.Context, id string) (attendance.Record, error) {
		return s.approve(ctx, adminID, id, note)
	}), nil
}

// BatchReject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BatchReject(ctx context.Context, adminID string, req attendance.BatchRejectRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reason := trimmed(req.Reason)
	return s.batch(ctx, "reject", req.RecordIDs, func(ctx context.Context, id string) (attendance.Record, error) {
		return s.reject(ctx, adminID, id, reason)
	}), nil
}

func (s *AttendanceServiceImpl) batch(ctx context.Context, op string, ids []string, apply func(ctx context.Context, id string) (attendance.Record, error)) []attendance.AttendanceResponse {
	results := make([]attendance.AttendanceResponse, 0, len(ids))
	for _, id := range ids {
		var record attendance.Record
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			record, err = apply(ctx, id)
			return err
		})

		switch {
		case err == nil:
			results = append(results, attendance.ToResponse(record))
		case errors.Is(err, attendance.ErrAttendanceAlreadyProcessed):
			slog.Warn("Skipping attendance record, not pending", "operation", op, "record_id", id)
		default:
			slog.Error("Batch attendance operation failed", "operation", op, "record_id", id, "error", err)
		}
	}

	slog.Info("Batch attendance operation finished", "operation", op, "requested", len(ids), "changed", len(results))
	return results
}
