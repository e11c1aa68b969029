package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
)

// TouristRepository определяет методы для работы с туристами
type TouristRepository interface {
	// Create регистрирует туриста; дубликат паспорта - ошибка
	Create(ctx context.Context, tourist *domain.Tourist) error

	// GetByID возвращает туриста по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tourist, error)

	// SetActive включает или выключает туриста
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// UpdateStatus обновляет производный статус безопасности
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TouristStatus) error
}

// LocationRepository определяет методы для истории перемещений
type LocationRepository interface {
	// Append добавляет неизменяемую запись и возвращает её ID
	Append(ctx context.Context, sample *domain.LocationSample) (int64, error)

	// ListByTourist возвращает историю туриста, новые записи первыми
	ListByTourist(ctx context.Context, touristID uuid.UUID, limit int) ([]*domain.LocationSample, error)
}
