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

// CredentialUseCase - якорение и отзыв credentials.
// Идентификатор выводится детерминированно из (subject, hash, issuer,
// issuedAt); валидность вычисляется, а не хранится.
type CredentialUseCase struct {
	credentialRepo repository.CredentialRepository
	streamRepo     repository.StreamRepository
	roles          RoleChecker
	logger         *zap.Logger
}

func NewCredentialUseCase(
	credentialRepo repository.CredentialRepository,
	streamRepo repository.StreamRepository,
	roles RoleChecker,
	logger *zap.Logger,
) *CredentialUseCase {
	return &CredentialUseCase{
		credentialRepo: credentialRepo,
		streamRepo:     streamRepo,
		roles:          roles,
		logger:         logger,
	}
}

// Issue якорит credential (только ISSUER). Повторная выдача с теми же
// входами в ту же секунду отклоняется как дубликат.
func (uc *CredentialUseCase) Issue(ctx context.Context, actor uuid.UUID, req dto.IssueCredentialRequest) (*domain.Credential, error) {
	if err := uc.roles.RequireRole(ctx, domain.RoleIssuer, actor); err != nil {
		return nil, err
	}

	subject, err := uuid.Parse(req.Subject)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	issuedAt := time.Now().UTC().Unix()
	if req.ExpiresAt != 0 && req.ExpiresAt <= issuedAt {
		return nil, errors.ErrInvalidRequest
	}

	credential := &domain.Credential{
		ID:        domain.DeriveCredentialID(subject, req.Hash, actor, issuedAt),
		Subject:   subject,
		Hash:      req.Hash,
		Issuer:    actor,
		IssuedAt:  issuedAt,
		ExpiresAt: req.ExpiresAt,
		Type:      req.Type,
	}

	if err := uc.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindCredential, credential.ID, actor.String(), "issued")

	uc.logger.Info("Credential issued",
		zap.String("credential_id", credential.ID),
		zap.String("subject", req.Subject),
		zap.String("type", req.Type))

	return credential, nil
}

// Revoke помечает credential отозванным (только ISSUER)
func (uc *CredentialUseCase) Revoke(ctx context.Context, actor uuid.UUID, id string) error {
	if err := uc.roles.RequireRole(ctx, domain.RoleIssuer, actor); err != nil {
		return err
	}

	if err := uc.credentialRepo.SetRevoked(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, uc.streamRepo, uc.logger,
		domain.EventKindCredential, id, actor.String(), "revoked")

	return nil
}

// Get возвращает credential с валидностью на текущий момент
func (uc *CredentialUseCase) Get(ctx context.Context, id string) (*dto.CredentialStatus, error) {
	credential, err := uc.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CredentialStatus{
		Credential: credential,
		Valid:      credential.ValidAt(time.Now().UTC()),
	}, nil
}

// FindCredentialID воспроизводит производный идентификатор по исходным
// полям выдачи (чистая функция)
func (uc *CredentialUseCase) FindCredentialID(req dto.FindCredentialIDRequest) (string, error) {
	subject, err := uuid.Parse(req.Subject)
	if err != nil {
		return "", errors.ErrInvalidRequest
	}
	issuer, err := uuid.Parse(req.Issuer)
	if err != nil {
		return "", errors.ErrInvalidRequest
	}

	return domain.DeriveCredentialID(subject, req.Hash, issuer, req.IssuedAt), nil
}
