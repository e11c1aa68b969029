package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type identityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewIdentityRepository(db *DB) repository.IdentityRepository {
	return &identityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *identityRepository) Upsert(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (actor, id_hash, uri, pub_key_ref, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (actor) DO UPDATE
		SET id_hash = EXCLUDED.id_hash,
		    uri = EXCLUDED.uri,
		    pub_key_ref = EXCLUDED.pub_key_ref,
		    active = EXCLUDED.active,
		    created_at = EXCLUDED.created_at,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		identity.Actor, identity.IDHash, identity.URI,
		identity.PubKeyRef, identity.Active,
		identity.CreatedAt, identity.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert identity",
			zap.String("actor", identity.Actor.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *identityRepository) GetByActor(ctx context.Context, actor uuid.UUID) (*domain.Identity, error) {
	query := `
		SELECT actor, id_hash, uri, pub_key_ref, active, created_at, updated_at
		FROM identities
		WHERE actor = $1
	`

	var identity domain.Identity
	err := r.db.QueryRowContext(ctx, query, actor).Scan(
		&identity.Actor, &identity.IDHash, &identity.URI,
		&identity.PubKeyRef, &identity.Active,
		&identity.CreatedAt, &identity.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrIdentityNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get identity", zap.String("actor", actor.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &identity, nil
}
