package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
)

// AlertRepository определяет методы для алертов и записей реагирования
type AlertRepository interface {
	// Create сохраняет новый алерт и возвращает последовательный ID
	Create(ctx context.Context, alert *domain.Alert) (int64, error)

	// GetByID возвращает алерт по ID
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)

	// UpdateState фиксирует переход жизненного цикла
	UpdateState(ctx context.Context, alert *domain.Alert) error

	// ListBySubject возвращает алерты субъекта, новые первыми
	ListBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*domain.Alert, error)

	// AddResponse добавляет запись реагирования, возвращает её индекс
	AddResponse(ctx context.Context, response *domain.EmergencyResponse) (int, error)

	// GetResponse возвращает запись реагирования по индексу
	GetResponse(ctx context.Context, alertID int64, index int) (*domain.EmergencyResponse, error)

	// UpdateResponse обновляет статус и заметки записи реагирования
	UpdateResponse(ctx context.Context, response *domain.EmergencyResponse) error

	// ListResponses возвращает записи реагирования алерта в порядке добавления
	ListResponses(ctx context.Context, alertID int64) ([]*domain.EmergencyResponse, error)
}
