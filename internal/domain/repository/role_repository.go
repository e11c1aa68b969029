package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/safety-microservice/internal/domain"
)

// RoleRepository определяет методы для плоских наборов ролей
type RoleRepository interface {
	// Grant добавляет актора в набор роли (идемпотентно)
	Grant(ctx context.Context, role domain.Role, actor uuid.UUID) error

	// Revoke убирает актора из набора роли
	Revoke(ctx context.Context, role domain.Role, actor uuid.UUID) error

	// Has проверяет членство актора в роли
	Has(ctx context.Context, role domain.Role, actor uuid.UUID) (bool, error)
}
