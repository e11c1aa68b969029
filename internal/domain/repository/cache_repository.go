package repository

import (
	"context"
	"time"

	"github.com/safety-microservice/internal/domain"
)

// CacheRepository определяет методы для кеша активных зон
type CacheRepository interface {
	// GetZones получает закешированный список активных зон
	GetZones(ctx context.Context) ([]*domain.Zone, error)

	// SetZones сохраняет список активных зон с TTL
	SetZones(ctx context.Context, zones []*domain.Zone, ttl time.Duration) error

	// InvalidateZones сбрасывает кеш после мутации зон
	InvalidateZones(ctx context.Context) error
}
