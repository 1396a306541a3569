package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temped/temped-api/internal/dto"
	"github.com/temped/temped-api/internal/interfaces"
)

// publisher sends domain events after the owning transaction committed.
// Delivery is best effort: a broker failure is logged, never returned.
type publisher struct {
	producer interfaces.ProducerHandler
	log      *zap.Logger
}

func (p publisher) publish(ctx context.Context, event string, key uuid.UUID, data any) {
	if p.producer == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		p.log.Error("marshal event", zap.String("event", event), zap.Error(err))
		return
	}
	msg, err := json.Marshal(dto.Envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Data:       raw,
	})
	if err != nil {
		p.log.Error("marshal envelope", zap.String("event", event), zap.Error(err))
		return
	}

	if err := p.producer.PublishMessage(context.WithoutCancel(ctx), []byte(key.String()), msg); err != nil {
		p.log.Warn("publish event", zap.String("event", event), zap.Stringer("key", key), zap.Error(err))
	}
}
