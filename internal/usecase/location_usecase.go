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

// LocationUseCase - приём позиций туристов и ведение их истории.
// Обработка сериализуется per-tourist, чтобы порядок добавления в историю
// был детерминированным; разные туристы обрабатываются параллельно.
type LocationUseCase struct {
	touristRepo  repository.TouristRepository
	locationRepo repository.LocationRepository
	geofenceUC   *GeofenceUseCase
	alertUC      *AlertUseCase
	streamRepo   repository.StreamRepository
	roles        RoleChecker
	logger       *zap.Logger
	locks        *utils.KeyedMutex
}

func NewLocationUseCase(
	touristRepo repository.TouristRepository,
	locationRepo repository.LocationRepository,
	geofenceUC *GeofenceUseCase,
	alertUC *AlertUseCase,
	streamRepo repository.StreamRepository,
	roles RoleChecker,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		touristRepo:  touristRepo,
		locationRepo: locationRepo,
		geofenceUC:   geofenceUC,
		alertUC:      alertUC,
		streamRepo:   streamRepo,
		roles:        roles,
		logger:       logger,
		locks:        utils.NewKeyedMutex(),
	}
}

// RegisterTourist регистрирует туриста (только ADMIN).
// Паспорт уникален: повторная регистрация отклоняется.
func (uc *LocationUseCase) RegisterTourist(ctx context.Context, actor uuid.UUID, req dto.RegisterTouristRequest) (*domain.Tourist, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return nil, err
	}

	tourist := &domain.Tourist{
		ID:           uuid.New(),
		Name:         req.Name,
		PassportHash: req.PassportHash,
		Nationality:  req.Nationality,
		Phone:        req.Phone,
		Status:       domain.StatusUnknown,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.touristRepo.Create(ctx, tourist); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindTourist, tourist.ID.String(), actor.String(), "registered")

	uc.logger.Info("Tourist registered", zap.String("tourist_id", tourist.ID.String()))
	return tourist, nil
}

// SetTouristActive включает или выключает туриста (только ADMIN)
func (uc *LocationUseCase) SetTouristActive(ctx context.Context, actor uuid.UUID, id uuid.UUID, active bool) error {
	if err := uc.roles.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return err
	}

	if err := uc.touristRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindTourist, id.String(), actor.String(), state)
	return nil
}

// GetTourist возвращает туриста по ID
func (uc *LocationUseCase) GetTourist(ctx context.Context, id uuid.UUID) (*domain.Tourist, error) {
	return uc.touristRepo.GetByID(ctx, id)
}

// RecordLocation принимает новую позицию туриста: определяет зону, выводит
// статус, добавляет запись в историю и при входе в danger/restricted зону
// синхронно создаёт zone_breach алерт. Запись добавляется независимо от
// исхода создания алерта; записи неизменяемы.
func (uc *LocationUseCase) RecordLocation(ctx context.Context, req dto.RecordLocationRequest) (*domain.LocationSample, error) {
	touristID, err := uuid.Parse(req.TouristID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	tourist, err := uc.touristRepo.GetByID(ctx, touristID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(tourist.ID.String())
	defer unlock()

	point := domain.PointFromDegrees(req.Lat, req.Lon)

	zone, matched, err := uc.geofenceUC.MatchZone(ctx, point)
	if err != nil {
		return nil, err
	}

	var zoneID int64
	var zoneType domain.ZoneType
	if matched {
		zoneID = zone.ID
		zoneType = zone.Type
	}
	status := domain.StatusForZone(matched, zoneType)

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	sample := &domain.LocationSample{
		TouristID: tourist.ID,
		Location:  point,
		Timestamp: ts,
		Status:    status,
		ZoneID:    zoneID,
	}

	sampleID, err := uc.locationRepo.Append(ctx, sample)
	if err != nil {
		uc.logger.Error("Failed to append location sample",
			zap.String("tourist_id", tourist.ID.String()),
			zap.Error(err))
		return nil, err
	}
	sample.ID = sampleID

	if err := uc.touristRepo.UpdateStatus(ctx, tourist.ID, status); err != nil {
		uc.logger.Warn("Failed to update tourist status",
			zap.String("tourist_id", tourist.ID.String()),
			zap.Error(err))
	}

	if matched && zone.Type.TriggersAlert() {
		if _, err := uc.alertUC.TriggerAlert(ctx, SystemActor, dto.TriggerAlertRequest{
			SubjectID: tourist.ID.String(),
			Type:      domain.AlertTypeZoneBreach,
			Message:   fmt.Sprintf("Tourist entered %s zone %q", zone.Type, zone.Name),
			Lat:       req.Lat,
			Lon:       req.Lon,
			Severity:  string(domain.SeverityHigh),
		}); err != nil {
			// Сэмпл уже записан; отказ алерта не откатывает приём позиции
			uc.logger.Error("Failed to trigger zone breach alert",
				zap.String("tourist_id", tourist.ID.String()),
				zap.Int64("zone_id", zone.ID),
				zap.Error(err))
		}
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindTourist, tourist.ID.String(), SystemActor, string(status))

	return sample, nil
}

// ListHistory возвращает историю перемещений туриста, новые записи первыми
func (uc *LocationUseCase) ListHistory(ctx context.Context, touristID uuid.UUID, limit int) ([]*domain.LocationSample, error) {
	if limit <= 0 {
		limit = 100
	}

	if _, err := uc.touristRepo.GetByID(ctx, touristID); err != nil {
		return nil, err
	}

	return uc.locationRepo.ListByTourist(ctx, touristID, limit)
}
