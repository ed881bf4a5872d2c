package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hims-api/internal/model"
)

type auditRepository struct {
	baseRepository
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_log (id, action, entity_type, entity_id, changes, request_id, created_at)
		VALUES (:id, :action, :entity_type, :entity_id, :changes, :request_id, :created_at)
	`
	if err := r.namedExec(ctx, "audit_create", query, log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error) {
	var logs []*model.AuditLog
	query := `
		SELECT id, action, entity_type, entity_id, changes, request_id, created_at
		FROM audit_log
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at
	`
	if err := r.selectAll(ctx, "audit_list", &logs, query, entityType, entityID); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *auditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind("DELETE FROM audit_log WHERE created_at < ?"), cutoff.UTC())
	r.metrics.ObserveDB("audit_prune", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit logs: %w", err)
	}
	return res.RowsAffected()
}
