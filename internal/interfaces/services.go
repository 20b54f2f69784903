package interfaces

import (
	"context"

	"github.com/google/uuid"

	"rpg-server/internal/models"
)

// AuthService manages accounts and access tokens.
type AuthService interface {
	Register(ctx context.Context, username, displayName, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.TokenDetails, error)
	Logout(ctx context.Context, accessUUID string) error
	// VerifyAccessToken checks signature, expiry and that the token was not revoked.
	VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error)
}

// CharacterService is the owner-scoped character catalogue.
type CharacterService interface {
	Create(ctx context.Context, owner string, in models.CharacterInput) (*models.Character, error)
	List(ctx context.Context, owner string) ([]models.Character, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error)
	Update(ctx context.Context, owner string, id uuid.UUID, in models.CharacterInput) (*models.Character, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}
