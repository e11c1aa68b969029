package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type touristRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTouristRepository(db *DB) repository.TouristRepository {
	return &touristRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *touristRepository) Create(ctx context.Context, tourist *domain.Tourist) error {
	query := `
		INSERT INTO tourists (id, name, passport_hash, nationality, phone, status, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		tourist.ID, tourist.Name, tourist.PassportHash,
		tourist.Nationality, tourist.Phone,
		tourist.Status, tourist.Active, tourist.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errors.ErrDuplicatePassport
		}
		r.logger.Error("Failed to insert tourist", zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *touristRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tourist, error) {
	query := `
		SELECT id, name, passport_hash, nationality, phone, status, active, created_at
		FROM tourists
		WHERE id = $1
	`

	var tourist domain.Tourist
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tourist.ID, &tourist.Name, &tourist.PassportHash,
		&tourist.Nationality, &tourist.Phone,
		&tourist.Status, &tourist.Active, &tourist.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTouristNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get tourist by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &tourist, nil
}

func (r *touristRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tourists SET active = $2 WHERE id = $1`,
		id, active,
	)
	if err != nil {
		r.logger.Error("Failed to set tourist active", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrTouristNotFound
	}

	return nil
}

func (r *touristRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TouristStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tourists SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		r.logger.Error("Failed to update tourist status", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrTouristNotFound
	}

	return nil
}
