package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/safety-microservice/internal/domain"
	apperrors "github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
)

func responderRoles(actor uuid.UUID) *MockRoleChecker {
	roles := &MockRoleChecker{}
	roles.On("RequireRole", mock.Anything, domain.RoleResponder, actor).Return(nil)
	return roles
}

func TestAlertUseCase_TriggerAlert(t *testing.T) {
	ctx := context.Background()
	subject := uuid.New()

	t.Run("creates alert in created state", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.State == domain.AlertCreated &&
				a.SubjectID == subject &&
				a.CreatedBy == usecase.SystemActor
		})).Return(int64(1), nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, &MockRoleChecker{}, zap.NewNop())

		alert, err := uc.TriggerAlert(ctx, usecase.SystemActor, dto.TriggerAlertRequest{
			SubjectID: subject.String(),
			Type:      domain.AlertTypeZoneBreach,
			Lat:       41.38,
			Lon:       2.17,
			Severity:  string(domain.SeverityHigh),
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), alert.ID)
		assert.Equal(t, domain.AlertCreated, alert.State)
		alertRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed subject", func(t *testing.T) {
		uc := usecase.NewAlertUseCase(&MockAlertRepository{}, &MockStreamRepository{}, &MockRoleChecker{}, zap.NewNop())

		_, err := uc.TriggerAlert(ctx, "caller", dto.TriggerAlertRequest{
			SubjectID: "not-a-uuid", Type: "emergency", Severity: "high",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("rejects unknown severity", func(t *testing.T) {
		uc := usecase.NewAlertUseCase(&MockAlertRepository{}, &MockStreamRepository{}, &MockRoleChecker{}, zap.NewNop())

		_, err := uc.TriggerAlert(ctx, "caller", dto.TriggerAlertRequest{
			SubjectID: subject.String(), Type: "emergency", Severity: "apocalyptic",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestAlertUseCase_AcknowledgeAlert(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("acknowledges created alert", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Alert{ID: 1, State: domain.AlertCreated}, nil)
		alertRepo.On("UpdateState", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.State == domain.AlertAcknowledged && a.AcknowledgedBy == actor.String()
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, responderRoles(actor), zap.NewNop())

		alert, err := uc.AcknowledgeAlert(ctx, actor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.AlertAcknowledged, alert.State)
		alertRepo.AssertExpectations(t)
	})

	t.Run("second acknowledge is a no-op", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Alert{ID: 1, State: domain.AlertAcknowledged}, nil)

		uc := usecase.NewAlertUseCase(alertRepo, &MockStreamRepository{}, responderRoles(actor), zap.NewNop())

		alert, err := uc.AcknowledgeAlert(ctx, actor, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.AlertAcknowledged, alert.State)
		alertRepo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything)
	})

	t.Run("acknowledge after resolve fails", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Alert{ID: 1, State: domain.AlertResolved}, nil)

		uc := usecase.NewAlertUseCase(alertRepo, &MockStreamRepository{}, responderRoles(actor), zap.NewNop())

		_, err := uc.AcknowledgeAlert(ctx, actor, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAlertState)
	})

	t.Run("requires responder role", func(t *testing.T) {
		roles := &MockRoleChecker{}
		roles.On("RequireRole", mock.Anything, domain.RoleResponder, actor).
			Return(apperrors.ErrUnauthorized)

		uc := usecase.NewAlertUseCase(&MockAlertRepository{}, &MockStreamRepository{}, roles, zap.NewNop())

		_, err := uc.AcknowledgeAlert(ctx, actor, 1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAlertUseCase_ResolveAlert(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("resolves directly from created", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(2)).
			Return(&domain.Alert{ID: 2, State: domain.AlertCreated}, nil)
		alertRepo.On("UpdateState", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.State == domain.AlertResolved && a.ResolvedBy == actor.String()
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, responderRoles(actor), zap.NewNop())

		alert, err := uc.ResolveAlert(ctx, actor, 2)
		assert.NoError(t, err)
		assert.Equal(t, domain.AlertResolved, alert.State)
	})

	t.Run("second resolve fails", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(2)).
			Return(&domain.Alert{ID: 2, State: domain.AlertResolved}, nil)

		uc := usecase.NewAlertUseCase(alertRepo, &MockStreamRepository{}, responderRoles(actor), zap.NewNop())

		_, err := uc.ResolveAlert(ctx, actor, 2)
		assert.ErrorIs(t, err, apperrors.ErrAlertAlreadyResolved)
	})
}

func TestAlertUseCase_DispatchResponse(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("dispatches to open alert", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(3)).
			Return(&domain.Alert{ID: 3, State: domain.AlertAcknowledged}, nil)
		alertRepo.On("AddResponse", mock.Anything, mock.MatchedBy(func(r *domain.EmergencyResponse) bool {
			return r.Type == domain.ResponseMedical &&
				r.Status == domain.ResponseDispatched &&
				r.ResponderID == actor
		})).Return(0, nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, responderRoles(actor), zap.NewNop())

		resp, err := uc.DispatchResponse(ctx, actor, 3, dto.DispatchResponseRequest{Type: "medical"})
		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Index)
		assert.Equal(t, domain.ResponseDispatched, resp.Status)
	})

	t.Run("cannot dispatch to resolved alert", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetByID", mock.Anything, int64(3)).
			Return(&domain.Alert{ID: 3, State: domain.AlertResolved}, nil)

		uc := usecase.NewAlertUseCase(alertRepo, &MockStreamRepository{}, responderRoles(actor), zap.NewNop())

		_, err := uc.DispatchResponse(ctx, actor, 3, dto.DispatchResponseRequest{Type: "police"})
		assert.ErrorIs(t, err, apperrors.ErrAlertAlreadyResolved)
	})

	t.Run("rejects unknown response type", func(t *testing.T) {
		uc := usecase.NewAlertUseCase(&MockAlertRepository{}, &MockStreamRepository{}, responderRoles(actor), zap.NewNop())

		_, err := uc.DispatchResponse(ctx, actor, 3, dto.DispatchResponseRequest{Type: "drone"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestAlertUseCase_UpdateResponseStatus(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	existing := func() *domain.EmergencyResponse {
		return &domain.EmergencyResponse{
			AlertID:     4,
			Index:       0,
			Type:        domain.ResponseRescue,
			Status:      domain.ResponseDispatched,
			ResponderID: owner,
			CreatedAt:   time.Now().UTC(),
		}
	}

	t.Run("owner advances the stage", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetResponse", mock.Anything, int64(4), 0).Return(existing(), nil)
		alertRepo.On("UpdateResponse", mock.Anything, mock.MatchedBy(func(r *domain.EmergencyResponse) bool {
			return r.Status == domain.ResponseOnSite && r.Notes == "arrived"
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, responderRoles(owner), zap.NewNop())

		resp, err := uc.UpdateResponseStatus(ctx, owner, 4, 0, dto.UpdateResponseStatusRequest{
			Status: "on_site", Notes: "arrived",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ResponseOnSite, resp.Status)
	})

	t.Run("non-owner is rejected even with the role", func(t *testing.T) {
		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetResponse", mock.Anything, int64(4), 0).Return(existing(), nil)

		uc := usecase.NewAlertUseCase(alertRepo, &MockStreamRepository{}, responderRoles(stranger), zap.NewNop())

		_, err := uc.UpdateResponseStatus(ctx, stranger, 4, 0, dto.UpdateResponseStatusRequest{Status: "en_route"})
		assert.ErrorIs(t, err, apperrors.ErrNotResponseOwner)
		alertRepo.AssertNotCalled(t, "UpdateResponse", mock.Anything, mock.Anything)
	})

	t.Run("empty notes keep previous notes", func(t *testing.T) {
		prev := existing()
		prev.Notes = "original dispatch notes"

		alertRepo := &MockAlertRepository{}
		alertRepo.On("GetResponse", mock.Anything, int64(4), 0).Return(prev, nil)
		alertRepo.On("UpdateResponse", mock.Anything, mock.MatchedBy(func(r *domain.EmergencyResponse) bool {
			return r.Notes == "original dispatch notes"
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewAlertUseCase(alertRepo, streamRepo, responderRoles(owner), zap.NewNop())

		_, err := uc.UpdateResponseStatus(ctx, owner, 4, 0, dto.UpdateResponseStatusRequest{Status: "completed"})
		assert.NoError(t, err)
	})
}
