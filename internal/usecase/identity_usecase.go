package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// IdentityUseCase - self-sovereign реестр цифровых личностей.
// Запись ключуется актором; повторная регистрация после деактивации
// перезаписывает прежнюю запись без сохранения истории.
type IdentityUseCase struct {
	identityRepo repository.IdentityRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger
}

func NewIdentityUseCase(
	identityRepo repository.IdentityRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *IdentityUseCase {
	return &IdentityUseCase{
		identityRepo: identityRepo,
		streamRepo:   streamRepo,
		logger:       logger,
	}
}

// Register регистрирует личность вызывающего актора.
// Отклоняется, если активная личность уже есть.
func (uc *IdentityUseCase) Register(ctx context.Context, actor uuid.UUID, req dto.RegisterIdentityRequest) (*domain.Identity, error) {
	existing, err := uc.identityRepo.GetByActor(ctx, actor)
	if err != nil && err != errors.ErrIdentityNotFound {
		return nil, err
	}
	if existing != nil && existing.Active {
		return nil, errors.ErrIdentityAlreadyActive
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Actor:     actor,
		IDHash:    req.IDHash,
		URI:       req.URI,
		PubKeyRef: req.PubKeyRef,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.identityRepo.Upsert(ctx, identity); err != nil {
		uc.logger.Error("Failed to register identity", zap.String("actor", actor.String()), zap.Error(err))
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIdentity, actor.String(), actor.String(), "registered")

	return identity, nil
}

// Update обновляет метаданные активной личности
func (uc *IdentityUseCase) Update(ctx context.Context, actor uuid.UUID, req dto.UpdateIdentityRequest) (*domain.Identity, error) {
	identity, err := uc.activeIdentity(ctx, actor)
	if err != nil {
		return nil, err
	}

	identity.URI = req.URI
	identity.PubKeyRef = req.PubKeyRef
	identity.UpdatedAt = time.Now().UTC()

	if err := uc.identityRepo.Upsert(ctx, identity); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIdentity, actor.String(), actor.String(), "updated")

	return identity, nil
}

// Deactivate выключает активную личность; позже актор может
// зарегистрироваться заново
func (uc *IdentityUseCase) Deactivate(ctx context.Context, actor uuid.UUID) error {
	identity, err := uc.activeIdentity(ctx, actor)
	if err != nil {
		return err
	}

	identity.Active = false
	identity.UpdatedAt = time.Now().UTC()

	if err := uc.identityRepo.Upsert(ctx, identity); err != nil {
		return err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindIdentity, actor.String(), actor.String(), "deactivated")

	return nil
}

// Get возвращает запись личности актора
func (uc *IdentityUseCase) Get(ctx context.Context, actor uuid.UUID) (*domain.Identity, error) {
	return uc.identityRepo.GetByActor(ctx, actor)
}

func (uc *IdentityUseCase) activeIdentity(ctx context.Context, actor uuid.UUID) (*domain.Identity, error) {
	identity, err := uc.identityRepo.GetByActor(ctx, actor)
	if err == errors.ErrIdentityNotFound {
		return nil, errors.ErrNoActiveIdentity
	}
	if err != nil {
		return nil, err
	}
	if !identity.Active {
		return nil, errors.ErrNoActiveIdentity
	}
	return identity, nil
}
