package repository

import (
	"context"

	"github.com/safety-microservice/internal/domain"
)

// ZoneRepository определяет методы для работы с геозонами
type ZoneRepository interface {
	// Create сохраняет новую зону и возвращает последовательный ID
	Create(ctx context.Context, zone *domain.Zone) (int64, error)

	// Update полностью заменяет изменяемые поля зоны
	Update(ctx context.Context, zone *domain.Zone) error

	// SetActive включает или выключает зону (мягкое удаление)
	SetActive(ctx context.Context, id int64, active bool) error

	// GetByID возвращает зону по ID
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)

	// List возвращает зоны в порядке возрастания ID
	List(ctx context.Context, activeOnly bool) ([]*domain.Zone, error)
}
