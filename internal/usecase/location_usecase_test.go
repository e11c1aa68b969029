package usecase_test

import (
	"context"
	"errors"
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

// locationFixture wires a LocationUseCase over mocked repositories with a
// real geofence and alert pipeline behind it.
type locationFixture struct {
	touristRepo  *MockTouristRepository
	locationRepo *MockLocationRepository
	zoneRepo     *MockZoneRepository
	cacheRepo    *MockCacheRepository
	alertRepo    *MockAlertRepository
	streamRepo   *MockStreamRepository
	roles        *MockRoleChecker
	uc           *usecase.LocationUseCase
}

func newLocationFixture() *locationFixture {
	f := &locationFixture{
		touristRepo:  &MockTouristRepository{},
		locationRepo: &MockLocationRepository{},
		zoneRepo:     &MockZoneRepository{},
		cacheRepo:    &MockCacheRepository{},
		alertRepo:    &MockAlertRepository{},
		streamRepo:   &MockStreamRepository{},
		roles:        &MockRoleChecker{},
	}
	logger := zap.NewNop()
	geofenceUC := usecase.NewGeofenceUseCase(f.zoneRepo, f.cacheRepo, f.streamRepo,
		f.roles, logger, usecase.ContainmentApprox, time.Minute)
	alertUC := usecase.NewAlertUseCase(f.alertRepo, f.streamRepo, f.roles, logger)
	f.uc = usecase.NewLocationUseCase(f.touristRepo, f.locationRepo, geofenceUC,
		alertUC, f.streamRepo, f.roles, logger)
	return f
}

func (f *locationFixture) withZones(zones ...*domain.Zone) {
	// Always stub a non-nil slice so the cache is treated as warm even
	// when the test has no zones.
	f.cacheRepo.On("GetZones", mock.Anything).Return(append([]*domain.Zone{}, zones...), nil)
}

func TestLocationUseCase_RegisterTourist(t *testing.T) {
	ctx := context.Background()
	admin := uuid.New()

	t.Run("registers active tourist with unknown status", func(t *testing.T) {
		f := newLocationFixture()
		f.roles.On("RequireRole", mock.Anything, domain.RoleAdmin, admin).Return(nil)
		f.touristRepo.On("Create", mock.Anything, mock.MatchedBy(func(tr *domain.Tourist) bool {
			return tr.Active && tr.Status == domain.StatusUnknown && tr.PassportHash == "deadbeefdeadbeef"
		})).Return(nil)
		f.streamRepo.allowPublish()

		tourist, err := f.uc.RegisterTourist(ctx, admin, dto.RegisterTouristRequest{
			Name: "Alex Petrov", PassportHash: "deadbeefdeadbeef",
		})
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tourist.ID)
		f.touristRepo.AssertExpectations(t)
	})

	t.Run("duplicate passport surfaces repository error", func(t *testing.T) {
		f := newLocationFixture()
		f.roles.On("RequireRole", mock.Anything, domain.RoleAdmin, admin).Return(nil)
		f.touristRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicatePassport)

		_, err := f.uc.RegisterTourist(ctx, admin, dto.RegisterTouristRequest{
			Name: "Alex Petrov", PassportHash: "deadbeefdeadbeef",
		})
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePassport)
	})

	t.Run("requires admin role", func(t *testing.T) {
		f := newLocationFixture()
		f.roles.On("RequireRole", mock.Anything, domain.RoleAdmin, admin).
			Return(apperrors.ErrUnauthorized)

		_, err := f.uc.RegisterTourist(ctx, admin, dto.RegisterTouristRequest{
			Name: "Alex Petrov", PassportHash: "deadbeefdeadbeef",
		})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestLocationUseCase_RecordLocation(t *testing.T) {
	ctx := context.Background()
	touristID := uuid.New()
	tourist := &domain.Tourist{ID: touristID, Name: "Alex Petrov", Active: true}

	t.Run("unknown tourist", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).
			Return(nil, apperrors.ErrTouristNotFound)

		_, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 41.38, Lon: 2.17,
		})
		assert.ErrorIs(t, err, apperrors.ErrTouristNotFound)
	})

	t.Run("safe position outside all zones", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).Return(tourist, nil)
		f.withZones()
		f.locationRepo.On("Append", mock.Anything, mock.MatchedBy(func(s *domain.LocationSample) bool {
			return s.Status == domain.StatusSafe && s.ZoneID == 0
		})).Return(int64(10), nil)
		f.touristRepo.On("UpdateStatus", mock.Anything, touristID, domain.StatusSafe).Return(nil)
		f.streamRepo.allowPublish()

		sample, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 41.38, Lon: 2.17,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(10), sample.ID)
		assert.Equal(t, domain.StatusSafe, sample.Status)
		f.alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		// The warm empty cache must satisfy the lookup without hitting the store.
		f.zoneRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("danger zone entry triggers zone breach alert", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).Return(tourist, nil)
		f.withZones(&domain.Zone{
			ID:      5,
			Name:    "Cliff edge",
			Center:  domain.PointFromDegrees(41.380000, 2.170000),
			RadiusM: 1000,
			Type:    domain.ZoneTypeDanger,
			Active:  true,
		})
		f.locationRepo.On("Append", mock.Anything, mock.MatchedBy(func(s *domain.LocationSample) bool {
			return s.Status == domain.StatusDanger && s.ZoneID == 5
		})).Return(int64(11), nil)
		f.touristRepo.On("UpdateStatus", mock.Anything, touristID, domain.StatusDanger).Return(nil)
		f.alertRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Type == domain.AlertTypeZoneBreach &&
				a.SubjectID == touristID &&
				a.Severity == domain.SeverityHigh &&
				a.CreatedBy == usecase.SystemActor
		})).Return(int64(1), nil)
		f.streamRepo.allowPublish()

		sample, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 41.380010, Lon: 2.170010,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDanger, sample.Status)
		f.alertRepo.AssertExpectations(t)
	})

	t.Run("moderate zone yields warning without alert", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).Return(tourist, nil)
		f.withZones(&domain.Zone{
			ID:      6,
			Center:  domain.PointFromDegrees(41.380000, 2.170000),
			RadiusM: 1000,
			Type:    domain.ZoneTypeModerate,
			Active:  true,
		})
		f.locationRepo.On("Append", mock.Anything, mock.Anything).Return(int64(12), nil)
		f.touristRepo.On("UpdateStatus", mock.Anything, touristID, domain.StatusWarning).Return(nil)
		f.streamRepo.allowPublish()

		sample, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 41.380010, Lon: 2.170010,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusWarning, sample.Status)
		f.alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("sample survives alert failure", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).Return(tourist, nil)
		f.withZones(&domain.Zone{
			ID:      7,
			Center:  domain.PointFromDegrees(41.380000, 2.170000),
			RadiusM: 1000,
			Type:    domain.ZoneTypeRestricted,
			Active:  true,
		})
		f.locationRepo.On("Append", mock.Anything, mock.Anything).Return(int64(13), nil)
		f.touristRepo.On("UpdateStatus", mock.Anything, touristID, domain.StatusDanger).Return(nil)
		f.alertRepo.On("Create", mock.Anything, mock.Anything).
			Return(int64(0), errors.New("insert failed"))
		f.streamRepo.allowPublish()

		sample, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 41.380010, Lon: 2.170010,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(13), sample.ID)
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		f := newLocationFixture()

		_, err := f.uc.RecordLocation(ctx, dto.RecordLocationRequest{
			TouristID: touristID.String(), Lat: 200, Lon: 2.17,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})
}

func TestLocationUseCase_ListHistory(t *testing.T) {
	ctx := context.Background()
	touristID := uuid.New()

	t.Run("applies default limit", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).
			Return(&domain.Tourist{ID: touristID}, nil)
		f.locationRepo.On("ListByTourist", mock.Anything, touristID, 100).
			Return([]*domain.LocationSample{}, nil)

		_, err := f.uc.ListHistory(ctx, touristID, 0)
		assert.NoError(t, err)
		f.locationRepo.AssertExpectations(t)
	})

	t.Run("unknown tourist", func(t *testing.T) {
		f := newLocationFixture()
		f.touristRepo.On("GetByID", mock.Anything, touristID).
			Return(nil, apperrors.ErrTouristNotFound)

		_, err := f.uc.ListHistory(ctx, touristID, 10)
		assert.ErrorIs(t, err, apperrors.ErrTouristNotFound)
	})
}
