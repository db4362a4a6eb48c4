package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/messaging"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

const DefaultChannel = "hms.events"

// Type builds an event type such as "doctor.created".
func Type(entity, op string) string {
	switch op {
	case model.OpCreate:
		return entity + ".created"
	case model.OpUpdate:
		return entity + ".updated"
	case model.OpDelete:
		return entity + ".deleted"
	default:
		return entity + "." + op
	}
}

type Service struct {
	broker  messaging.Broker
	channel string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(broker messaging.Broker, channel string, log *logger.Logger, m *metrics.Metrics) *Service {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		broker:  broker,
		channel: channel,
		logger:  log,
		metrics: m,
	}
}

// Emit publishes a lifecycle event. The returned error is informational; callers
// never fail an operation because of it.
func (s *Service) Emit(ctx context.Context, sess *model.Session, eventType string, payload interface{}) error {
	if s == nil || s.broker == nil {
		return nil
	}

	msg := messaging.Message{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Actor:      sess.Actor(),
		Payload:    payload,
	}

	err := s.broker.Publish(ctx, s.channel, msg)
	s.metrics.ObserveEvent(eventType, err)
	if err != nil {
		s.logger.Error(err, "failed to publish event", "type", eventType, "event_id", msg.ID)
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
