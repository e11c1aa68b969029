package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/domain/repository"
	"github.com/safety-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type zoneRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewZoneRepository(db *DB) repository.ZoneRepository {
	return &zoneRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *zoneRepository) Create(ctx context.Context, zone *domain.Zone) (int64, error) {
	query := `
		INSERT INTO zones (name, description, lat_e6, lon_e6, radius_m, zone_type, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		zone.Name, zone.Description,
		zone.Center.LatE6, zone.Center.LonE6,
		zone.RadiusM, zone.Type, zone.Active,
		zone.CreatedBy, zone.CreatedAt, zone.UpdatedAt,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert zone", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *zoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	query := `
		UPDATE zones
		SET name = $2, description = $3, lat_e6 = $4, lon_e6 = $5,
		    radius_m = $6, zone_type = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		zone.ID, zone.Name, zone.Description,
		zone.Center.LatE6, zone.Center.LonE6,
		zone.RadiusM, zone.Type, zone.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update zone", zap.Int64("id", zone.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrZoneNotFound
	}

	return nil
}

func (r *zoneRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE zones SET active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		r.logger.Error("Failed to set zone active", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrZoneNotFound
	}

	return nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	query := `
		SELECT id, name, description, lat_e6, lon_e6, radius_m, zone_type, active, created_by, created_at, updated_at
		FROM zones
		WHERE id = $1
	`

	zone, err := scanZone(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrZoneNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get zone by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return zone, nil
}

func (r *zoneRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Zone, error) {
	query := `
		SELECT id, name, description, lat_e6, lon_e6, radius_m, zone_type, active, created_by, created_at, updated_at
		FROM zones
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list zones", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var zones []*domain.Zone
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			r.logger.Error("Failed to scan zone", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return zones, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanZone(row rowScanner) (*domain.Zone, error) {
	var zone domain.Zone
	err := row.Scan(
		&zone.ID, &zone.Name, &zone.Description,
		&zone.Center.LatE6, &zone.Center.LonE6,
		&zone.RadiusM, &zone.Type, &zone.Active,
		&zone.CreatedBy, &zone.CreatedAt, &zone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &zone, nil
}
