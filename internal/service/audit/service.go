package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/repository"
	"github.com/jwalitptl/hims-api/pkg/logger"
	"github.com/jwalitptl/hims-api/pkg/messaging"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

// Service writes the audit trail and announces committed writes.
type Service struct {
	broker  messaging.Broker
	channel string
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(broker messaging.Broker, channel string, m *metrics.Metrics, log *logger.Logger, now func() time.Time) *Service {
	if broker == nil {
		broker = messaging.NopBroker{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		broker:  broker,
		channel: channel,
		metrics: m,
		logger:  log.With("audit"),
		now:     now,
	}
}

// Log creates an audit log entry through repo, which should be bound to the
// transaction of the write being audited.
func (s *Service) Log(ctx context.Context, repo repository.AuditRepository, action, entityType, entityID string, changes interface{}) error {
	payload := []byte("{}")
	if changes != nil {
		var err error
		payload, err = json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("failed to marshal audit changes: %w", err)
		}
	}

	return repo.Create(ctx, &model.AuditLog{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    string(payload),
		RequestID:  logger.RequestID(ctx),
		CreatedAt:  s.now().UTC(),
	})
}

// Notify runs after commit. Publishing is best effort: a failure is logged
// and counted, never returned, because the write already happened.
func (s *Service) Notify(ctx context.Context, action, entityType, entityID string) {
	s.metrics.RecordWrite(entityType, action)
	s.logger.Info("record written", "entity", entityType, "action", action, "id", entityID)

	event := model.RecordEvent{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  logger.RequestID(ctx),
		OccurredAt: s.now().UTC(),
	}

	status := "success"
	if err := s.broker.Publish(ctx, s.channel, event); err != nil {
		status = "error"
		s.logger.Error(err, "failed to publish record event", "entity", entityType, "id", entityID)
	}
	if s.metrics != nil {
		s.metrics.PublishTotal.WithLabelValues(status).Inc()
	}
}
