package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const activeZonesKey = "cache:zones:active"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// GetZones получает закешированный список активных зон
func (r *cacheRepository) GetZones(ctx context.Context) ([]*domain.Zone, error) {
	data, err := r.client.Get(ctx, activeZonesKey).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get zones from cache", zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var zones []*domain.Zone
	if err := json.Unmarshal(data, &zones); err != nil {
		r.logger.Error("Failed to unmarshal zones from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal zones: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", activeZonesKey), zap.Int("zones", len(zones)))
	return zones, nil
}

// SetZones сохраняет список активных зон с TTL
func (r *cacheRepository) SetZones(ctx context.Context, zones []*domain.Zone, ttl time.Duration) error {
	data, err := json.Marshal(zones)
	if err != nil {
		r.logger.Error("Failed to marshal zones", zap.Error(err))
		return fmt.Errorf("marshal zones: %w", err)
	}

	if err := r.client.Set(ctx, activeZonesKey, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set zones cache", zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", activeZonesKey), zap.Duration("ttl", ttl))
	return nil
}

// InvalidateZones сбрасывает кеш после мутации зон
func (r *cacheRepository) InvalidateZones(ctx context.Context) error {
	if err := r.client.Del(ctx, activeZonesKey).Err(); err != nil {
		r.logger.Error("Failed to invalidate zones cache", zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache invalidated", zap.String("key", activeZonesKey))
	return nil
}
