package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type roleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRoleRepository(db *DB) repository.RoleRepository {
	return &roleRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *roleRepository) Grant(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_members (role, actor) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		string(role), actor,
	)
	if err != nil {
		r.logger.Error("Failed to grant role",
			zap.String("role", string(role)),
			zap.String("actor", actor.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *roleRepository) Revoke(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM role_members WHERE role = $1 AND actor = $2`,
		string(role), actor,
	)
	if err != nil {
		r.logger.Error("Failed to revoke role",
			zap.String("role", string(role)),
			zap.String("actor", actor.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *roleRepository) Has(ctx context.Context, role domain.Role, actor uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM role_members WHERE role = $1 AND actor = $2)`,
		string(role), actor,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check role membership",
			zap.String("role", string(role)),
			zap.String("actor", actor.String()),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return exists, nil
}
