package models

import "errors"

// Application-wide standard errors
var (
	ErrNotFound = errors.New("resource not found")

	// Encounter
	ErrInvalidGameState   = errors.New("invalid game state")
	ErrInvalidAction      = errors.New("invalid player action")
	ErrEncounterConcluded = errors.New("encounter already concluded")
	ErrIncompleteOutcome  = errors.New("provider outcome is missing required fields")

	// Characters
	ErrCharacterNotFound      = errors.New("character not found")
	ErrCharacterAlreadyExists = errors.New("character with this name already exists")
	ErrInvalidCharacterID     = errors.New("invalid character id")

	// Users & authentication
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Tokens
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	ErrInvalidInput = errors.New("invalid input data")
)
