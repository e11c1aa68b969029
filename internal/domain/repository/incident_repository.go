package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
)

// IncidentRepository определяет методы для инцидентов
type IncidentRepository interface {
	// Create сохраняет новый инцидент и возвращает последовательный ID
	Create(ctx context.Context, incident *domain.Incident) (int64, error)

	// GetByID возвращает инцидент по ID
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)

	// Update фиксирует переход жизненного цикла или привязку credential
	Update(ctx context.Context, incident *domain.Incident) error

	// ListByReporter возвращает инциденты репортёра, новые первыми
	ListByReporter(ctx context.Context, reporter uuid.UUID, limit int) ([]*domain.Incident, error)

	// ListByStatus возвращает инциденты в заданном статусе
	ListByStatus(ctx context.Context, status domain.IncidentStatus, limit int) ([]*domain.Incident, error)
}
