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

// IncidentUseCase - жизненный цикл инцидентов:
// Reported -> Acknowledged -> {Resolved, Dismissed}, с прямым переходом
// Reported -> {Resolved, Dismissed}. Подача требует активной Identity.
type IncidentUseCase struct {
	incidentRepo   repository.IncidentRepository
	identityRepo   repository.IdentityRepository
	credentialRepo repository.CredentialRepository
	streamRepo     repository.StreamRepository
	roles          RoleChecker
	logger         *zap.Logger
	locks          *utils.KeyedMutex
}

func NewIncidentUseCase(
	incidentRepo repository.IncidentRepository,
	identityRepo repository.IdentityRepository,
	credentialRepo repository.CredentialRepository,
	streamRepo repository.StreamRepository,
	roles RoleChecker,
	logger *zap.Logger,
) *IncidentUseCase {
	return &IncidentUseCase{
		incidentRepo:   incidentRepo,
		identityRepo:   identityRepo,
		credentialRepo: credentialRepo,
		streamRepo:     streamRepo,
		roles:          roles,
		logger:         logger,
		locks:          utils.NewKeyedMutex(),
	}
}

// Report подаёт инцидент. Прекондиция: у репортёра есть активная Identity.
func (uc *IncidentUseCase) Report(ctx context.Context, actor uuid.UUID, req dto.ReportIncidentRequest) (*domain.Incident, error) {
	identity, err := uc.identityRepo.GetByActor(ctx, actor)
	if err == errors.ErrIdentityNotFound {
		return nil, errors.ErrIdentityRequired
	}
	if err != nil {
		return nil, err
	}
	if !identity.Active {
		return nil, errors.ErrIdentityRequired
	}

	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	now := time.Now().UTC()
	incident := &domain.Incident{
		Reporter:   actor,
		Location:   domain.PointFromDegrees(req.Lat, req.Lon),
		Timestamp:  now,
		Category:   req.Category,
		DetailsRef: req.DetailsRef,
		ZoneID:     req.ZoneID,
		Status:     domain.IncidentReported,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := uc.incidentRepo.Create(ctx, incident)
	if err != nil {
		uc.logger.Error("Failed to create incident", zap.Error(err))
		return nil, err
	}
	incident.ID = id

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIncident, fmt.Sprintf("%d", id), actor.String(), string(domain.IncidentReported))

	uc.logger.Info("Incident reported",
		zap.Int64("incident_id", id),
		zap.String("category", req.Category),
		zap.String("reporter", actor.String()))

	return incident, nil
}

// Acknowledge подтверждает инцидент и самоназначает ответственного
// (только RESPONDER, только из Reported)
func (uc *IncidentUseCase) Acknowledge(ctx context.Context, actor uuid.UUID, id int64) (*domain.Incident, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(incidentKey(id))
	defer unlock()

	incident, err := uc.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !incident.CanAcknowledge() {
		return nil, errors.ErrInvalidIncidentState
	}

	incident.Status = domain.IncidentAcknowledged
	incident.Responder = actor
	incident.UpdatedAt = time.Now().UTC()

	if err := uc.incidentRepo.Update(ctx, incident); err != nil {
		uc.logger.Error("Failed to acknowledge incident", zap.Int64("incident_id", id), zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIncident, fmt.Sprintf("%d", id), actor.String(), string(domain.IncidentAcknowledged))

	return incident, nil
}

// Resolve закрывает инцидент (только RESPONDER, из Reported или
// Acknowledged). Если ответственный не был назначен, им становится
// закрывающий.
func (uc *IncidentUseCase) Resolve(ctx context.Context, actor uuid.UUID, id int64, dismiss bool) (*domain.Incident, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(incidentKey(id))
	defer unlock()

	incident, err := uc.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !incident.CanResolve() {
		return nil, errors.ErrInvalidIncidentState
	}

	if dismiss {
		incident.Status = domain.IncidentDismissed
	} else {
		incident.Status = domain.IncidentResolved
	}
	if !incident.Assigned() {
		incident.Responder = actor
	}
	incident.UpdatedAt = time.Now().UTC()

	if err := uc.incidentRepo.Update(ctx, incident); err != nil {
		uc.logger.Error("Failed to resolve incident", zap.Int64("incident_id", id), zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIncident, fmt.Sprintf("%d", id), actor.String(), string(incident.Status))

	return incident, nil
}

// LinkCredential привязывает credential как доказательство (только
// RESPONDER, инцидент уже должен иметь назначенного респондера).
// Перезаписывает предыдущую привязку, история не ведётся.
func (uc *IncidentUseCase) LinkCredential(ctx context.Context, actor uuid.UUID, id int64, credentialID string) (*domain.Incident, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleResponder, actor); err != nil {
		return nil, err
	}

	if _, err := uc.credentialRepo.GetByID(ctx, credentialID); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(incidentKey(id))
	defer unlock()

	incident, err := uc.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !incident.Assigned() {
		return nil, errors.ErrInvalidIncidentState
	}

	incident.CredentialID = credentialID
	incident.UpdatedAt = time.Now().UTC()

	if err := uc.incidentRepo.Update(ctx, incident); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIncident, fmt.Sprintf("%d", id), actor.String(), "credential_linked")

	return incident, nil
}

// Get возвращает инцидент по ID
func (uc *IncidentUseCase) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	return uc.incidentRepo.GetByID(ctx, id)
}

// ListByReporter возвращает инциденты репортёра, новые первыми
func (uc *IncidentUseCase) ListByReporter(ctx context.Context, reporter uuid.UUID, limit int) ([]*domain.Incident, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.incidentRepo.ListByReporter(ctx, reporter, limit)
}

// ListByStatus возвращает инциденты в заданном статусе
func (uc *IncidentUseCase) ListByStatus(ctx context.Context, status domain.IncidentStatus, limit int) ([]*domain.Incident, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.incidentRepo.ListByStatus(ctx, status, limit)
}

func incidentKey(id int64) string {
	return fmt.Sprintf("incident:%d", id)
}
