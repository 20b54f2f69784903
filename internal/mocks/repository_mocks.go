package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ret := _m.Called(ctx, username)
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)

// MockCharacterRepository is a mock type for the CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

func (_m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)
	return ret.Error(0)
}

func (_m *MockCharacterRepository) ListByOwner(ctx context.Context, owner string) ([]models.Character, error) {
	ret := _m.Called(ctx, owner)
	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterRepository) GetByID(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, owner, id)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterRepository) Update(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)
	return ret.Error(0)
}

func (_m *MockCharacterRepository) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	ret := _m.Called(ctx, owner, id)
	return ret.Error(0)
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)

// MockTokenRepository is a mock type for the TokenRepository type
type MockTokenRepository struct {
	mock.Mock
}

func (_m *MockTokenRepository) SetToken(ctx context.Context, accessUUID, username string, ttl time.Duration) error {
	ret := _m.Called(ctx, accessUUID, username, ttl)
	return ret.Error(0)
}

func (_m *MockTokenRepository) GetUsernameByAccessUUID(ctx context.Context, accessUUID string) (string, error) {
	ret := _m.Called(ctx, accessUUID)
	return ret.String(0), ret.Error(1)
}

func (_m *MockTokenRepository) DeleteToken(ctx context.Context, accessUUID string) error {
	ret := _m.Called(ctx, accessUUID)
	return ret.Error(0)
}

var _ interfaces.TokenRepository = (*MockTokenRepository)(nil)
