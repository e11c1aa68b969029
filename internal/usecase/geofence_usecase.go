package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ContainmentMode выбирает функцию проверки принадлежности точки зоне
type ContainmentMode string

const (
	// ContainmentApprox - быстрая приближённая проверка из исходных
	// контрактов (квадрат разности сырых координат против radius²).
	// Режим по умолчанию: окружающая логика алертов откалибрована под него.
	ContainmentApprox ContainmentMode = "approx"

	// ContainmentHaversine - геодезическая проверка по haversine
	ContainmentHaversine ContainmentMode = "haversine"
)

// GeofenceUseCase - реестр геозон и вычисление принадлежности.
// Совпадение зон разрешается в порядке регистрации: первая активная зона,
// содержащая точку, выигрывает, независимо от размера.
type GeofenceUseCase struct {
	zoneRepo   repository.ZoneRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	roles      RoleChecker
	logger     *zap.Logger
	mode       ContainmentMode
	cacheTTL   time.Duration
}

func NewGeofenceUseCase(
	zoneRepo repository.ZoneRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	roles RoleChecker,
	logger *zap.Logger,
	mode ContainmentMode,
	cacheTTL time.Duration,
) *GeofenceUseCase {
	if mode != ContainmentHaversine {
		mode = ContainmentApprox
	}
	return &GeofenceUseCase{
		zoneRepo:   zoneRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		roles:      roles,
		logger:     logger,
		mode:       mode,
		cacheTTL:   cacheTTL,
	}
}

// AddZone создаёт зону (только ADMIN)
func (uc *GeofenceUseCase) AddZone(ctx context.Context, actor uuid.UUID, req dto.CreateZoneRequest) (*domain.Zone, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return nil, err
	}

	zoneType := domain.ZoneType(req.Type)
	if !zoneType.IsValid() {
		return nil, errors.ErrInvalidRequest
	}
	if req.RadiusM <= 0 {
		return nil, errors.ErrInvalidRadius
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	now := time.Now().UTC()
	zone := &domain.Zone{
		Name:        req.Name,
		Description: req.Description,
		Center:      domain.PointFromDegrees(req.Lat, req.Lon),
		RadiusM:     req.RadiusM,
		Type:        zoneType,
		Active:      true,
		CreatedBy:   actor.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := uc.zoneRepo.Create(ctx, zone)
	if err != nil {
		uc.logger.Error("Failed to create zone", zap.Error(err))
		return nil, err
	}
	zone.ID = id

	uc.invalidateZoneCache(ctx)
	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindZone, fmt.Sprintf("%d", id), actor.String(), "created")

	uc.logger.Info("Zone created",
		zap.Int64("zone_id", id),
		zap.String("type", string(zoneType)),
		zap.Int64("radius_m", req.RadiusM))

	return zone, nil
}

// UpdateZone полностью заменяет изменяемые поля зоны (только ADMIN)
func (uc *GeofenceUseCase) UpdateZone(ctx context.Context, actor uuid.UUID, id int64, req dto.UpdateZoneRequest) (*domain.Zone, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return nil, err
	}

	zoneType := domain.ZoneType(req.Type)
	if !zoneType.IsValid() {
		return nil, errors.ErrInvalidRequest
	}
	if req.RadiusM <= 0 {
		return nil, errors.ErrInvalidRadius
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	zone, err := uc.zoneRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	zone.Name = req.Name
	zone.Description = req.Description
	zone.Center = domain.PointFromDegrees(req.Lat, req.Lon)
	zone.RadiusM = req.RadiusM
	zone.Type = zoneType
	zone.UpdatedAt = time.Now().UTC()

	if err := uc.zoneRepo.Update(ctx, zone); err != nil {
		uc.logger.Error("Failed to update zone", zap.Int64("zone_id", id), zap.Error(err))
		return nil, err
	}

	uc.invalidateZoneCache(ctx)
	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindZone, fmt.Sprintf("%d", id), actor.String(), "updated")

	return zone, nil
}

// SetZoneActive включает или выключает зону (только ADMIN).
// Зоны не удаляются: исторические ссылки на zoneID должны оставаться валидными.
func (uc *GeofenceUseCase) SetZoneActive(ctx context.Context, actor uuid.UUID, id int64, active bool) error {
	if err := uc.roles.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return err
	}

	if err := uc.zoneRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	uc.invalidateZoneCache(ctx)

	state := "deactivated"
	if active {
		state = "activated"
	}
	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindZone, fmt.Sprintf("%d", id), actor.String(), state)

	return nil
}

// GetZone возвращает зону по ID
func (uc *GeofenceUseCase) GetZone(ctx context.Context, id int64) (*domain.Zone, error) {
	return uc.zoneRepo.GetByID(ctx, id)
}

// ListZones возвращает зоны в порядке регистрации
func (uc *GeofenceUseCase) ListZones(ctx context.Context, activeOnly bool) ([]*domain.Zone, error) {
	return uc.zoneRepo.List(ctx, activeOnly)
}

// MatchZone возвращает первую активную зону, содержащую точку.
// Порядок обхода - по возрастанию ID, то есть по порядку регистрации:
// широкая зона, зарегистрированная раньше узкой, затеняет её.
func (uc *GeofenceUseCase) MatchZone(ctx context.Context, p domain.Point) (*domain.Zone, bool, error) {
	zones, err := uc.activeZones(ctx)
	if err != nil {
		return nil, false, err
	}

	for _, zone := range zones {
		if uc.contains(p, zone) {
			return zone, true, nil
		}
	}
	return nil, false, nil
}

// IsWithin проверяет принадлежность точки конкретной зоне (чистая функция)
func (uc *GeofenceUseCase) IsWithin(p domain.Point, zone *domain.Zone) bool {
	return uc.contains(p, zone)
}

func (uc *GeofenceUseCase) contains(p domain.Point, zone *domain.Zone) bool {
	if uc.mode == ContainmentHaversine {
		return utils.HaversineWithinRadius(
			p.LatE6, p.LonE6,
			zone.Center.LatE6, zone.Center.LonE6,
			zone.RadiusM,
		)
	}
	return utils.ApproxWithinRadius(
		p.LatE6, p.LonE6,
		zone.Center.LatE6, zone.Center.LonE6,
		zone.RadiusM,
	)
}

// activeZones - cache-aside чтение списка активных зон
func (uc *GeofenceUseCase) activeZones(ctx context.Context) ([]*domain.Zone, error) {
	cached, err := uc.cacheRepo.GetZones(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get zones from cache", zap.Error(err))
	}

	zones, err := uc.zoneRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetZones(ctx, zones, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache zones", zap.Error(err))
	}

	return zones, nil
}

func (uc *GeofenceUseCase) invalidateZoneCache(ctx context.Context) {
	if err := uc.cacheRepo.InvalidateZones(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate zone cache", zap.Error(err))
	}
}
