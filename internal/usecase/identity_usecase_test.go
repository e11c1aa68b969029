package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/safety-microservice/internal/domain"
	apperrors "github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
)

func TestIdentityUseCase_Register(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	req := dto.RegisterIdentityRequest{
		IDHash: "feedface00feedface",
		URI:    "ipfs://QmProfile",
	}

	t.Run("first registration succeeds", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(nil, apperrors.ErrIdentityNotFound)
		identityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(i *domain.Identity) bool {
			return i.Actor == actor && i.Active && i.IDHash == req.IDHash
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewIdentityUseCase(identityRepo, streamRepo, zap.NewNop())

		identity, err := uc.Register(ctx, actor, req)
		assert.NoError(t, err)
		assert.True(t, identity.Active)
		identityRepo.AssertExpectations(t)
	})

	t.Run("active identity blocks re-registration", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(&domain.Identity{Actor: actor, Active: true}, nil)

		uc := usecase.NewIdentityUseCase(identityRepo, &MockStreamRepository{}, zap.NewNop())

		_, err := uc.Register(ctx, actor, req)
		assert.ErrorIs(t, err, apperrors.ErrIdentityAlreadyActive)
		identityRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("re-registration after deactivation overwrites the record", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(&domain.Identity{Actor: actor, Active: false, IDHash: "oldhash0oldhash0"}, nil)
		identityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(i *domain.Identity) bool {
			return i.Active && i.IDHash == req.IDHash
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewIdentityUseCase(identityRepo, streamRepo, zap.NewNop())

		identity, err := uc.Register(ctx, actor, req)
		assert.NoError(t, err)
		assert.Equal(t, req.IDHash, identity.IDHash)
	})
}

func TestIdentityUseCase_Update(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("updates metadata of active identity", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(&domain.Identity{Actor: actor, Active: true, URI: "ipfs://old"}, nil)
		identityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(i *domain.Identity) bool {
			return i.URI == "ipfs://new"
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewIdentityUseCase(identityRepo, streamRepo, zap.NewNop())

		identity, err := uc.Update(ctx, actor, dto.UpdateIdentityRequest{URI: "ipfs://new"})
		assert.NoError(t, err)
		assert.Equal(t, "ipfs://new", identity.URI)
	})

	t.Run("no active identity", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(&domain.Identity{Actor: actor, Active: false}, nil)

		uc := usecase.NewIdentityUseCase(identityRepo, &MockStreamRepository{}, zap.NewNop())

		_, err := uc.Update(ctx, actor, dto.UpdateIdentityRequest{URI: "ipfs://new"})
		assert.ErrorIs(t, err, apperrors.ErrNoActiveIdentity)
	})
}

func TestIdentityUseCase_Deactivate(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("deactivates active identity", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(&domain.Identity{Actor: actor, Active: true}, nil)
		identityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(i *domain.Identity) bool {
			return !i.Active
		})).Return(nil)

		streamRepo := &MockStreamRepository{}
		streamRepo.allowPublish()

		uc := usecase.NewIdentityUseCase(identityRepo, streamRepo, zap.NewNop())

		err := uc.Deactivate(ctx, actor)
		assert.NoError(t, err)
		identityRepo.AssertExpectations(t)
	})

	t.Run("never registered", func(t *testing.T) {
		identityRepo := &MockIdentityRepository{}
		identityRepo.On("GetByActor", mock.Anything, actor).
			Return(nil, apperrors.ErrIdentityNotFound)

		uc := usecase.NewIdentityUseCase(identityRepo, &MockStreamRepository{}, zap.NewNop())

		err := uc.Deactivate(ctx, actor)
		assert.ErrorIs(t, err, apperrors.ErrNoActiveIdentity)
	})
}
