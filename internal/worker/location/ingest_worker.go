package location

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"github.com/safety-microservice/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// LocationIngestWorker потребляет события позиций из stream:location:update
// и прогоняет каждую через полный safety-конвейер (зона, статус, алерт)
type LocationIngestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	locationUC   *usecase.LocationUseCase
	consumerName string
	maxRetries   int
}

// NewLocationIngestWorker создает новый LocationIngestWorker
func NewLocationIngestWorker(
	streamRepo repository.StreamRepository,
	locationUC *usecase.LocationUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *LocationIngestWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &LocationIngestWorker{
		BaseWorker:   worker.NewBaseWorker("location-ingest", consumerGroup, logger),
		streamRepo:   streamRepo,
		locationUC:   locationUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *LocationIngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting LocationIngestWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamLocationUpdate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			// Обрабатываем batch сообщений
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений
// Возвращает количество обработанных сообщений
func (w *LocationIngestWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamLocationUpdate,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	processed := 0
	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamLocationUpdate, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.handleEvent(ctx, event); err != nil {
			logger.Error("Failed to handle location event",
				zap.String("message_id", msg.ID),
				zap.String("tourist_id", event.TouristID.String()),
				zap.Error(err))
			if isPermanent(err) {
				// Невалидное событие: ACK чтобы не застревало в очереди
				_ = w.streamRepo.AckMessage(ctx, domain.StreamLocationUpdate, w.ConsumerGroup(), msg.ID)
			}
			// Иначе не подтверждаем: сообщение будет переобработано
			continue
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamLocationUpdate, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		}
		processed++
	}

	logger.Info("Batch processed",
		zap.Int("received", len(messages)),
		zap.Int("processed", processed))

	return len(messages), nil
}

// handleEvent прогоняет событие через LocationUseCase с ретраями
func (w *LocationIngestWorker) handleEvent(ctx context.Context, event *domain.LocationUpdateEvent) error {
	req := dto.RecordLocationRequest{
		TouristID: event.TouristID.String(),
		Lat:       event.Lat,
		Lon:       event.Lon,
		Timestamp: event.Timestamp,
	}

	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if _, err := w.locationUC.RecordLocation(ctx, req); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return lastErr
}

// isPermanent отличает невалидные события от временных сбоев инфраструктуры
func isPermanent(err error) bool {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode < 500
	}
	return false
}

// parseMessage парсит сообщение из стрима в LocationUpdateEvent
func (w *LocationIngestWorker) parseMessage(msg domain.StreamMessage) (*domain.LocationUpdateEvent, error) {
	var event domain.LocationUpdateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
