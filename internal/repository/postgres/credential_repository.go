package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type credentialRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCredentialRepository(db *DB) repository.CredentialRepository {
	return &credentialRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *credentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	query := `
		INSERT INTO credentials (id, subject, content_hash, issuer, issued_at, expires_at, revoked, cred_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		credential.ID, credential.Subject, credential.Hash,
		credential.Issuer, credential.IssuedAt, credential.ExpiresAt,
		credential.Revoked, credential.Type,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.ErrDuplicateCredential
		}
		r.logger.Error("Failed to insert credential", zap.String("id", credential.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *credentialRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	query := `
		SELECT id, subject, content_hash, issuer, issued_at, expires_at, revoked, cred_type
		FROM credentials
		WHERE id = $1
	`

	var credential domain.Credential
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&credential.ID, &credential.Subject, &credential.Hash,
		&credential.Issuer, &credential.IssuedAt, &credential.ExpiresAt,
		&credential.Revoked, &credential.Type,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrCredentialNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get credential", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &credential, nil
}

func (r *credentialRepository) SetRevoked(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE credentials SET revoked = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		r.logger.Error("Failed to revoke credential", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrCredentialNotFound
	}

	return nil
}
