// Package worker holds maintenance jobs run from the command line.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hims-api/internal/repository"
)

// AuditCleanup removes audit entries past their retention period. It runs
// once per invocation; scheduling is left to the operator (cron, a k8s
// CronJob).
type AuditCleanup struct {
	repo          repository.AuditRepository
	retentionDays int
}

func NewAuditCleanup(repo repository.AuditRepository, retentionDays int) *AuditCleanup {
	return &AuditCleanup{repo: repo, retentionDays: retentionDays}
}

// Run deletes entries older than the retention period measured from now.
func (w *AuditCleanup) Run(ctx context.Context, now time.Time) (int64, error) {
	if w.retentionDays <= 0 {
		return 0, fmt.Errorf("retention must be at least one day, got %d", w.retentionDays)
	}
	cutoff := now.AddDate(0, 0, -w.retentionDays)

	rows, err := w.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup audit logs: %w", err)
	}

	log.Info().Int64("rows", rows).Time("cutoff", cutoff).Msg("Cleaned up audit logs")
	return rows, nil
}
