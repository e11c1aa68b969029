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

// SystemActor - значение createdBy для алертов, созданных самим сервисом
// (автоматический zone_breach при входе в опасную зону)
const SystemActor = "system"

// AlertUseCase - жизненный цикл алертов и записей реагирования.
// Переходы по одному алерту сериализуются per-entity мьютексом, чтобы
// проверка "уже закрыт" не гонялась с конкурентным resolve/dispatch.
type AlertUseCase struct {
	alertRepo  repository.AlertRepository
	streamRepo repository.StreamRepository
	roles      RoleChecker
	logger     *zap.Logger
	locks      *utils.KeyedMutex
}

func NewAlertUseCase(
	alertRepo repository.AlertRepository,
	streamRepo repository.StreamRepository,
	roles RoleChecker,
	logger *zap.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		alertRepo:  alertRepo,
		streamRepo: streamRepo,
		roles:      roles,
		logger:     logger,
		locks:      utils.NewKeyedMutex(),
	}
}

// TriggerAlert создаёт алерт в состоянии Created. Создание доступно любому
// вызывающему с корректным субъектом; роль не требуется.
func (uc *AlertUseCase) TriggerAlert(ctx context.Context, createdBy string, req dto.TriggerAlertRequest) (*domain.Alert, error) {
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	severity := domain.Severity(req.Severity)
	if !severity.IsValid() {
		return nil, errors.ErrInvalidRequest
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	now := time.Now().UTC()
	alert := &domain.Alert{
		SubjectID: subjectID,
		Type:      req.Type,
		Message:   req.Message,
		Location:  domain.PointFromDegrees(req.Lat, req.Lon),
		Severity:  severity,
		State:     domain.AlertCreated,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := uc.alertRepo.Create(ctx, alert)
	if err != nil {
		uc.logger.Error("Failed to create alert", zap.Error(err))
		return nil, err
	}
	alert.ID = id

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindAlert, fmt.Sprintf("%d", id), createdBy, string(domain.AlertCreated))

	uc.logger.Info("Alert triggered",
		zap.Int64("alert_id", id),
		zap.String("type", req.Type),
		zap.String("severity", string(severity)),
		zap.String("subject_id", req.SubjectID))

	return alert, nil
}

// AcknowledgeAlert подтверждает алерт (только RESPONDER).
// Повторное подтверждение - no-op, как в исходнике; подтверждение
// закрытого алерта недопустимо.
func (uc *AlertUseCase) AcknowledgeAlert(ctx context.Context, actor uuid.UUID, id int64) (*domain.Alert, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(alertKey(id))
	defer unlock()

	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !alert.CanAcknowledge() {
		return nil, errors.ErrInvalidAlertState
	}
	if alert.State == domain.AlertAcknowledged {
		return alert, nil
	}

	alert.State = domain.AlertAcknowledged
	alert.AcknowledgedBy = actor.String()
	alert.UpdatedAt = time.Now().UTC()

	if err := uc.alertRepo.UpdateState(ctx, alert); err != nil {
		uc.logger.Error("Failed to acknowledge alert", zap.Int64("alert_id", id), zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindAlert, fmt.Sprintf("%d", id), actor.String(), string(domain.AlertAcknowledged))

	return alert, nil
}

// ResolveAlert закрывает алерт (только RESPONDER). Resolved терминален:
// повторное закрытие - ошибка
func (uc *AlertUseCase) ResolveAlert(ctx context.Context, actor uuid.UUID, id int64) (*domain.Alert, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(alertKey(id))
	defer unlock()

	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !alert.CanResolve() {
		return nil, errors.ErrAlertAlreadyResolved
	}

	alert.State = domain.AlertResolved
	alert.ResolvedBy = actor.String()
	alert.UpdatedAt = time.Now().UTC()

	if err := uc.alertRepo.UpdateState(ctx, alert); err != nil {
		uc.logger.Error("Failed to resolve alert", zap.Int64("alert_id", id), zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindAlert, fmt.Sprintf("%d", id), actor.String(), string(domain.AlertResolved))

	return alert, nil
}

// GetAlert возвращает алерт вместе с его записями реагирования
func (uc *AlertUseCase) GetAlert(ctx context.Context, id int64) (*dto.AlertWithResponses, error) {
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses, err := uc.alertRepo.ListResponses(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.AlertWithResponses{
		Alert:     alert,
		Responses: responses,
	}, nil
}

// ListAlertsBySubject возвращает алерты субъекта, новые первыми
func (uc *AlertUseCase) ListAlertsBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*domain.Alert, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.alertRepo.ListBySubject(ctx, subjectID, limit)
}

// DispatchResponse добавляет запись реагирования к открытому алерту
// (только RESPONDER)
func (uc *AlertUseCase) DispatchResponse(ctx context.Context, actor uuid.UUID, alertID int64, req dto.DispatchResponseRequest) (*domain.EmergencyResponse, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	responseType := domain.ResponseType(req.Type)
	if !responseType.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	unlock := uc.locks.Lock(alertKey(alertID))
	defer unlock()

	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.Resolved() {
		return nil, errors.ErrAlertAlreadyResolved
	}

	now := time.Now().UTC()
	response := &domain.EmergencyResponse{
		AlertID:     alertID,
		Type:        responseType,
		Status:      domain.ResponseDispatched,
		ResponderID: actor,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	index, err := uc.alertRepo.AddResponse(ctx, response)
	if err != nil {
		uc.logger.Error("Failed to dispatch response", zap.Int64("alert_id", alertID), zap.Error(err))
		return nil, err
	}
	response.Index = index

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindResponse,
		fmt.Sprintf("%d/%d", alertID, index),
		actor.String(),
		string(domain.ResponseDispatched))

	return response, nil
}

// UpdateResponseStatus обновляет стадию записи реагирования.
// Владение проверяется per-entry: менять запись может только диспетчер,
// который её создал.
func (uc *AlertUseCase) UpdateResponseStatus(ctx context.Context, actor uuid.UUID, alertID int64, index int, req dto.UpdateResponseStatusRequest) (*domain.EmergencyResponse, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	status := domain.ResponseStatus(req.Status)
	if !status.IsValid() {
		return nil, errors.ErrInvalidRequest
	}

	unlock := uc.locks.Lock(alertKey(alertID))
	defer unlock()

	response, err := uc.alertRepo.GetResponse(ctx, alertID, index)
	if err != nil {
		return nil, err
	}
	if response.ResponderID != actor {
		return nil, errors.ErrNotResponseOwner
	}

	response.Status = status
	if req.Notes != "" {
		response.Notes = req.Notes
	}
	response.UpdatedAt = time.Now().UTC()

	if err := uc.alertRepo.UpdateResponse(ctx, response); err != nil {
		uc.logger.Error("Failed to update response status",
			zap.Int64("alert_id", alertID),
			zap.Int("index", index),
			zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindResponse,
		fmt.Sprintf("%d/%d", alertID, index),
		actor.String(),
		string(status))

	return response, nil
}

func alertKey(id int64) string {
	return fmt.Sprintf("alert:%d", id)
}
