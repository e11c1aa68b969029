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

type locationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLocationRepository(db *DB) repository.LocationRepository {
	return &locationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *locationRepository) Append(ctx context.Context, sample *domain.LocationSample) (int64, error) {
	query := `
		INSERT INTO location_samples (tourist_id, lat_e6, lon_e6, timestamp, status, zone_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sample.TouristID,
		sample.Location.LatE6, sample.Location.LonE6,
		sample.Timestamp, sample.Status, sample.ZoneID,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to append location sample",
			zap.String("tourist_id", sample.TouristID.String()),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *locationRepository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit int) ([]*domain.LocationSample, error) {
	query := `
		SELECT id, tourist_id, lat_e6, lon_e6, timestamp, status, zone_id
		FROM location_samples
		WHERE tourist_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, touristID, limit)
	if err != nil {
		r.logger.Error("Failed to list location samples",
			zap.String("tourist_id", touristID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var samples []*domain.LocationSample
	for rows.Next() {
		var s domain.LocationSample
		if err := rows.Scan(
			&s.ID, &s.TouristID,
			&s.Location.LatE6, &s.Location.LonE6,
			&s.Timestamp, &s.Status, &s.ZoneID,
		); err != nil {
			return nil, errors.ErrDatabaseError
		}
		samples = append(samples, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return samples, nil
}
