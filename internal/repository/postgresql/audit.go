package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/google/uuid"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

// Append implements audit.AuditRepository. Entries are never updated or deleted.
func (r *auditRepository) Append(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to generate id: %w", err)
	}
	entry.ID = id.String()

	query := `
		INSERT INTO audit_entries (id, record_type, record_id, actor_id, action, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query,
		entry.ID, entry.RecordType, entry.RecordID, entry.ActorID, entry.Action, entry.Note,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return entry, nil
}

// ListByRecord implements audit.AuditRepository.
func (r *auditRepository) ListByRecord(ctx context.Context, recordType audit.RecordType, recordID string) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, record_type, record_id, actor_id, action, note, created_at
		FROM audit_entries
		WHERE record_type = $1 AND record_id = $2
		ORDER BY created_at, id`, recordType, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.RecordType, &e.RecordID, &e.ActorID, &e.Action, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// List implements audit.AuditRepository.
func (r *auditRepository) List(ctx context.Context, filter audit.AuditFilter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.RecordType != nil {
		where += fmt.Sprintf(" AND record_type = $%d", argIdx)
		args = append(args, *filter.RecordType)
		argIdx++
	}
	if filter.RecordID != nil {
		where += fmt.Sprintf(" AND record_id = $%d", argIdx)
		args = append(args, *filter.RecordID)
		argIdx++
	}
	if filter.ActorID != nil {
		where += fmt.Sprintf(" AND actor_id = $%d", argIdx)
		args = append(args, *filter.ActorID)
		argIdx++
	}
	if filter.Action != nil {
		where += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_entries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, record_type, record_id, actor_id, action, note, created_at
		FROM audit_entries
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.RecordType, &e.RecordID, &e.ActorID, &e.Action, &e.Note, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return entries, total, nil
}
