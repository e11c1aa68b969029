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

type alertRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAlertRepository(db *DB) repository.AlertRepository {
	return &alertRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) (int64, error) {
	query := `
		INSERT INTO alerts (subject_id, alert_type, message, lat_e6, lon_e6, severity, state, created_by, acknowledged_by, resolved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', '', $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		alert.SubjectID, alert.Type, alert.Message,
		alert.Location.LatE6, alert.Location.LonE6,
		alert.Severity, alert.State, alert.CreatedBy,
		alert.CreatedAt, alert.UpdatedAt,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert alert", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return id, nil
}

func (r *alertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	query := `
		SELECT id, subject_id, alert_type, message, lat_e6, lon_e6, severity, state, created_by, acknowledged_by, resolved_by, created_at, updated_at
		FROM alerts
		WHERE id = $1
	`

	alert, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrAlertNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get alert by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return alert, nil
}

func (r *alertRepository) UpdateState(ctx context.Context, alert *domain.Alert) error {
	query := `
		UPDATE alerts
		SET state = $2, acknowledged_by = $3, resolved_by = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.State,
		alert.AcknowledgedBy, alert.ResolvedBy, alert.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update alert state", zap.Int64("id", alert.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrAlertNotFound
	}

	return nil
}

func (r *alertRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*domain.Alert, error) {
	query := `
		SELECT id, subject_id, alert_type, message, lat_e6, lon_e6, severity, state, created_by, acknowledged_by, resolved_by, created_at, updated_at
		FROM alerts
		WHERE subject_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, subjectID, limit)
	if err != nil {
		r.logger.Error("Failed to list alerts by subject",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, errors.ErrDatabaseError
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return alerts, nil
}

// AddResponse вычисляет следующий индекс внутри транзакции, чтобы
// конкурентные отправки по одному алерту не получили одинаковый индекс
func (r *alertRepository) AddResponse(ctx context.Context, response *domain.EmergencyResponse) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	var index int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(response_index) + 1, 0) FROM emergency_responses WHERE alert_id = $1`,
		response.AlertID,
	).Scan(&index)
	if err != nil {
		r.logger.Error("Failed to compute response index", zap.Int64("alert_id", response.AlertID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO emergency_responses (alert_id, response_index, response_type, status, responder_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		response.AlertID, index, response.Type, response.Status,
		response.ResponderID, response.Notes,
		response.CreatedAt, response.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert response", zap.Int64("alert_id", response.AlertID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.ErrDatabaseError
	}

	return index, nil
}

func (r *alertRepository) GetResponse(ctx context.Context, alertID int64, index int) (*domain.EmergencyResponse, error) {
	query := `
		SELECT alert_id, response_index, response_type, status, responder_id, notes, created_at, updated_at
		FROM emergency_responses
		WHERE alert_id = $1 AND response_index = $2
	`

	var resp domain.EmergencyResponse
	err := r.db.QueryRowContext(ctx, query, alertID, index).Scan(
		&resp.AlertID, &resp.Index, &resp.Type, &resp.Status,
		&resp.ResponderID, &resp.Notes,
		&resp.CreatedAt, &resp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrResponseNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get response",
			zap.Int64("alert_id", alertID),
			zap.Int("index", index),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &resp, nil
}

func (r *alertRepository) UpdateResponse(ctx context.Context, response *domain.EmergencyResponse) error {
	query := `
		UPDATE emergency_responses
		SET status = $3, notes = $4, updated_at = $5
		WHERE alert_id = $1 AND response_index = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		response.AlertID, response.Index,
		response.Status, response.Notes, response.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update response",
			zap.Int64("alert_id", response.AlertID),
			zap.Int("index", response.Index),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if rows == 0 {
		return errors.ErrResponseNotFound
	}

	return nil
}

func (r *alertRepository) ListResponses(ctx context.Context, alertID int64) ([]*domain.EmergencyResponse, error) {
	query := `
		SELECT alert_id, response_index, response_type, status, responder_id, notes, created_at, updated_at
		FROM emergency_responses
		WHERE alert_id = $1
		ORDER BY response_index ASC
	`

	rows, err := r.db.QueryContext(ctx, query, alertID)
	if err != nil {
		r.logger.Error("Failed to list responses", zap.Int64("alert_id", alertID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var responses []*domain.EmergencyResponse
	for rows.Next() {
		var resp domain.EmergencyResponse
		if err := rows.Scan(
			&resp.AlertID, &resp.Index, &resp.Type, &resp.Status,
			&resp.ResponderID, &resp.Notes,
			&resp.CreatedAt, &resp.UpdatedAt,
		); err != nil {
			return nil, errors.ErrDatabaseError
		}
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return responses, nil
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var alert domain.Alert
	err := row.Scan(
		&alert.ID, &alert.SubjectID, &alert.Type, &alert.Message,
		&alert.Location.LatE6, &alert.Location.LonE6,
		&alert.Severity, &alert.State, &alert.CreatedBy,
		&alert.AcknowledgedBy, &alert.ResolvedBy,
		&alert.CreatedAt, &alert.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
