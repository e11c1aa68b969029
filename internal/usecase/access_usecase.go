package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// RoleChecker проверяет членство актора в роли перед мутирующей операцией
type RoleChecker interface {
	// RequireRole возвращает ErrUnauthorized, если актор не в роли
	RequireRole(ctx context.Context, role domain.Role, actor uuid.UUID) error
}

// AccessUseCase - плоское управление ролями. Выдача и отзыв доступны
// только ADMIN; бутстрап-админ назначается при старте сервиса.
type AccessUseCase struct {
	roleRepo   repository.RoleRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewAccessUseCase(
	roleRepo repository.RoleRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *AccessUseCase {
	return &AccessUseCase{
		roleRepo:   roleRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// RequireRole реализует RoleChecker
func (uc *AccessUseCase) RequireRole(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	ok, err := uc.roleRepo.Has(ctx, role, actor)
	if err != nil {
		uc.logger.Error("Failed to check role membership",
			zap.String("role", string(role)),
			zap.String("actor", actor.String()),
			zap.Error(err))
		return err
	}
	if !ok {
		return errors.ErrUnauthorized
	}
	return nil
}

// GrantRole выдаёт роль актору (только ADMIN)
func (uc *AccessUseCase) GrantRole(ctx context.Context, actor uuid.UUID, role domain.Role, target uuid.UUID) error {
	if !role.IsValid() {
		return errors.ErrInvalidRequest
	}
	if err := uc.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return err
	}

	if err := uc.roleRepo.Grant(ctx, role, target); err != nil {
		return err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindRole, target.String(), actor.String(), "granted:"+string(role))
	return nil
}

// RevokeRole отзывает роль у актора (только ADMIN)
func (uc *AccessUseCase) RevokeRole(ctx context.Context, actor uuid.UUID, role domain.Role, target uuid.UUID) error {
	if !role.IsValid() {
		return errors.ErrInvalidRequest
	}
	if err := uc.RequireRole(ctx, domain.RoleAdmin, actor); err != nil {
		return err
	}

	if err := uc.roleRepo.Revoke(ctx, role, target); err != nil {
		return err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindRole, target.String(), actor.String(), "revoked:"+string(role))
	return nil
}

// HasRole проверяет членство без требования
func (uc *AccessUseCase) HasRole(ctx context.Context, role domain.Role, actor uuid.UUID) (bool, error) {
	return uc.roleRepo.Has(ctx, role, actor)
}

// SeedAdmin назначает бутстрап-админа при старте (идемпотентно)
func (uc *AccessUseCase) SeedAdmin(ctx context.Context, admin uuid.UUID) error {
	if admin == uuid.Nil {
		return nil
	}
	if err := uc.roleRepo.Grant(ctx, domain.RoleAdmin, admin); err != nil {
		return err
	}
	uc.logger.Info("Bootstrap admin seeded", zap.String("actor", admin.String()))
	return nil
}
