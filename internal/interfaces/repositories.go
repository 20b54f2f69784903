package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"rpg-server/internal/models"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser returns models.ErrUserAlreadyExists for a taken username.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByUsername returns models.ErrUserNotFound when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// CharacterRepository persists characters. Every lookup is scoped to the owner.
type CharacterRepository interface {
	// Create returns models.ErrCharacterAlreadyExists when the owner already has that name.
	Create(ctx context.Context, character *models.Character) error
	ListByOwner(ctx context.Context, owner string) ([]models.Character, error)
	// GetByID returns models.ErrCharacterNotFound for a missing id or another owner's record.
	GetByID(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error)
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// TokenRepository tracks issued access tokens so they can be revoked.
type TokenRepository interface {
	SetToken(ctx context.Context, accessUUID, username string, ttl time.Duration) error
	// GetUsernameByAccessUUID returns models.ErrTokenNotFound for revoked or expired tokens.
	GetUsernameByAccessUUID(ctx context.Context, accessUUID string) (string, error)
	DeleteToken(ctx context.Context, accessUUID string) error
}
