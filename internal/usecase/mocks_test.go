package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/safety-microservice/internal/domain"
)

// MockZoneRepository is a mock of ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) Create(ctx context.Context, zone *domain.Zone) (int64, error) {
	args := m.Called(ctx, zone)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockZoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockZoneRepository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Zone), args.Error(1)
}

func (m *MockZoneRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Zone, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Zone), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetZones(ctx context.Context) ([]*domain.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Zone), args.Error(1)
}

func (m *MockCacheRepository) SetZones(ctx context.Context, zones []*domain.Zone, ttl time.Duration) error {
	args := m.Called(ctx, zones, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateZones(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// allowPublish silences event publication for tests that do not assert on it
func (m *MockStreamRepository) allowPublish() {
	m.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

// MockRoleChecker is a mock of RoleChecker
type MockRoleChecker struct {
	mock.Mock
}

func (m *MockRoleChecker) RequireRole(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	args := m.Called(ctx, role, actor)
	return args.Error(0)
}

// MockTouristRepository is a mock of TouristRepository
type MockTouristRepository struct {
	mock.Mock
}

func (m *MockTouristRepository) Create(ctx context.Context, tourist *domain.Tourist) error {
	args := m.Called(ctx, tourist)
	return args.Error(0)
}

func (m *MockTouristRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tourist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tourist), args.Error(1)
}

func (m *MockTouristRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockTouristRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TouristStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockLocationRepository is a mock of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Append(ctx context.Context, sample *domain.LocationSample) (int64, error) {
	args := m.Called(ctx, sample)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit int) ([]*domain.LocationSample, error) {
	args := m.Called(ctx, touristID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LocationSample), args.Error(1)
}

// MockAlertRepository is a mock of AlertRepository
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) (int64, error) {
	args := m.Called(ctx, alert)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) UpdateState(ctx context.Context, alert *domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*domain.Alert, error) {
	args := m.Called(ctx, subjectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) AddResponse(ctx context.Context, response *domain.EmergencyResponse) (int, error) {
	args := m.Called(ctx, response)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertRepository) GetResponse(ctx context.Context, alertID int64, index int) (*domain.EmergencyResponse, error) {
	args := m.Called(ctx, alertID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmergencyResponse), args.Error(1)
}

func (m *MockAlertRepository) UpdateResponse(ctx context.Context, response *domain.EmergencyResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockAlertRepository) ListResponses(ctx context.Context, alertID int64) ([]*domain.EmergencyResponse, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EmergencyResponse), args.Error(1)
}

// MockIncidentRepository is a mock of IncidentRepository
type MockIncidentRepository struct {
	mock.Mock
}

func (m *MockIncidentRepository) Create(ctx context.Context, incident *domain.Incident) (int64, error) {
	args := m.Called(ctx, incident)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIncidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Incident), args.Error(1)
}

func (m *MockIncidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockIncidentRepository) ListByReporter(ctx context.Context, reporter uuid.UUID, limit int) ([]*domain.Incident, error) {
	args := m.Called(ctx, reporter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Incident), args.Error(1)
}

func (m *MockIncidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus, limit int) ([]*domain.Incident, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Incident), args.Error(1)
}

// MockIdentityRepository is a mock of IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Upsert(ctx context.Context, identity *domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByActor(ctx context.Context, actor uuid.UUID) (*domain.Identity, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

// MockCredentialRepository is a mock of CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *MockCredentialRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) SetRevoked(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoleRepository is a mock of RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Grant(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	args := m.Called(ctx, role, actor)
	return args.Error(0)
}

func (m *MockRoleRepository) Revoke(ctx context.Context, role domain.Role, actor uuid.UUID) error {
	args := m.Called(ctx, role, actor)
	return args.Error(0)
}

func (m *MockRoleRepository) Has(ctx context.Context, role domain.Role, actor uuid.UUID) (bool, error) {
	args := m.Called(ctx, role, actor)
	return args.Bool(0), args.Error(1)
}
