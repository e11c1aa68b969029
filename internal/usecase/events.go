package usecase

import (
	"context"
	"time"

	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// publishEvent отправляет событие мутации в стрим нотификаций.
// Публикация происходит после фиксации состояния; её отказ логируется,
// но не откатывает уже совершённую операцию.
func publishEvent(
	ctx context.Context,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	kind, entityID, actor, state string,
) {
	evt := domain.Event{
		Kind:     kind,
		EntityID: entityID,
		Actor:    actor,
		State:    state,
		At:       time.Now().UTC(),
	}

	if err := streamRepo.PublishToStream(ctx, domain.StreamSafetyEvents, evt); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("kind", kind),
			zap.String("entity_id", entityID),
			zap.String("state", state),
			zap.Error(err))
	}
}
