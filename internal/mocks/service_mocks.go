package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

// MockAuthService is a mock type for the AuthService type
type MockAuthService struct {
	mock.Mock
}

func (_m *MockAuthService) Register(ctx context.Context, username, displayName, password string) (*models.User, error) {
	ret := _m.Called(ctx, username, displayName, password)
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) Login(ctx context.Context, username, password string) (*models.TokenDetails, error) {
	ret := _m.Called(ctx, username, password)
	var r0 *models.TokenDetails
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.TokenDetails)
	}
	return r0, ret.Error(1)
}

func (_m *MockAuthService) Logout(ctx context.Context, accessUUID string) error {
	ret := _m.Called(ctx, accessUUID)
	return ret.Error(0)
}

func (_m *MockAuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	ret := _m.Called(ctx, tokenString)
	var r0 *models.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Claims)
	}
	return r0, ret.Error(1)
}

var _ interfaces.AuthService = (*MockAuthService)(nil)

// MockCharacterService is a mock type for the CharacterService type
type MockCharacterService struct {
	mock.Mock
}

func (_m *MockCharacterService) Create(ctx context.Context, owner string, in models.CharacterInput) (*models.Character, error) {
	ret := _m.Called(ctx, owner, in)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) List(ctx context.Context, owner string) ([]models.Character, error) {
	ret := _m.Called(ctx, owner)
	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) Get(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, owner, id)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) Update(ctx context.Context, owner string, id uuid.UUID, in models.CharacterInput) (*models.Character, error) {
	ret := _m.Called(ctx, owner, id, in)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	ret := _m.Called(ctx, owner, id)
	return ret.Error(0)
}

var _ interfaces.CharacterService = (*MockCharacterService)(nil)
