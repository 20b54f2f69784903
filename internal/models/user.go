package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is an account able to own characters and play encounters.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"nomeUsuario" db:"username"`
	DisplayName  string    `json:"nome" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Claims are the JWT claims of an access token. Subject holds the username, ID the access uuid.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenDetails describes an issued access token.
type TokenDetails struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	AccessUUID  string `json:"-"`
	AtExpires   int64  `json:"-"`
}
