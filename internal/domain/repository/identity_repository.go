package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
)

// IdentityRepository определяет методы для цифровых личностей
type IdentityRepository interface {
	// Upsert создаёт или перезаписывает запись актора (история не хранится)
	Upsert(ctx context.Context, identity *domain.Identity) error

	// GetByActor возвращает запись актора
	GetByActor(ctx context.Context, actor uuid.UUID) (*domain.Identity, error)
}

// CredentialRepository определяет методы для credentials
type CredentialRepository interface {
	// Create якорит credential; дубликат ID - ошибка
	Create(ctx context.Context, credential *domain.Credential) error

	// GetByID возвращает credential по производному ID
	GetByID(ctx context.Context, id string) (*domain.Credential, error)

	// SetRevoked помечает credential отозванным
	SetRevoked(ctx context.Context, id string) error
}
