package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type incidentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewIncidentRepository(db *DB) repository.IncidentRepository {
	return &incidentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) (int64, error) {
	query := `
		INSERT INTO incidents (reporter, lat_e6, lon_e6, timestamp, category, details_ref, zone_id, responder, status, credential_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		incident.Reporter,
		incident.Location.LatE6, incident.Location.LonE6,
		incident.Timestamp, incident.Category, incident.DetailsRef,
		incident.ZoneID, incident.Status, incident.CredentialID,
		incident.CreatedAt, incident.UpdatedAt,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert incident", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	query := `
		SELECT id, reporter, lat_e6, lon_e6, timestamp, category, details_ref, zone_id, responder, status, credential_id, created_at, updated_at
		FROM incidents
		WHERE id = $1
	`

	incident, err := scanIncident(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrIncidentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get incident by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return incident, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	var responder interface{}
	if incident.Responder != uuid.Nil {
		responder = incident.Responder
	}

	query := `
		UPDATE incidents
		SET responder = $2, status = $3, credential_id = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		incident.ID, responder, incident.Status,
		incident.CredentialID, incident.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update incident", zap.Int64("id", incident.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrIncidentNotFound
	}

	return nil
}

func (r *incidentRepository) ListByReporter(ctx context.Context, reporter uuid.UUID, limit int) ([]*domain.Incident, error) {
	query := `
		SELECT id, reporter, lat_e6, lon_e6, timestamp, category, details_ref, zone_id, responder, status, credential_id, created_at, updated_at
		FROM incidents
		WHERE reporter = $1
		ORDER BY id DESC
		LIMIT $2
	`

	return r.list(ctx, query, reporter, limit)
}

func (r *incidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus, limit int) ([]*domain.Incident, error) {
	// ANY по text[] оставляет запрос одним для любого набора статусов
	query := `
		SELECT id, reporter, lat_e6, lon_e6, timestamp, category, details_ref, zone_id, responder, status, credential_id, created_at, updated_at
		FROM incidents
		WHERE status = ANY($1::text[])
		ORDER BY id DESC
		LIMIT $2
	`

	return r.list(ctx, query, pq.Array([]string{string(status)}), limit)
}

func (r *incidentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Incident, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list incidents", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var incidents []*domain.Incident
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, errors.ErrDatabaseError
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return incidents, nil
}

func scanIncident(row rowScanner) (*domain.Incident, error) {
	var incident domain.Incident
	var responder uuid.NullUUID
	err := row.Scan(
		&incident.ID, &incident.Reporter,
		&incident.Location.LatE6, &incident.Location.LonE6,
		&incident.Timestamp, &incident.Category, &incident.DetailsRef,
		&incident.ZoneID, &responder, &incident.Status,
		&incident.CredentialID, &incident.CreatedAt, &incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if responder.Valid {
		incident.Responder = responder.UUID
	}
	return &incident, nil
}
