package handler

import (
	"regexp"

	"github.com/google/uuid"

	"rpg-server/internal/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	maxPasswordLength = 100
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

type signupRequest struct {
	Username    string `json:"nomeUsuario" binding:"required"`
	DisplayName string `json:"nome" binding:"required"`
	Password    string `json:"senha" binding:"required"`
}

type loginRequest struct {
	Username string `json:"nomeUsuario" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// startGameRequest opens an encounter. When CharacterID is set the stored character replaces state.player.
type startGameRequest struct {
	State       models.GameState `json:"state"`
	Rules       []string         `json:"rules"`
	CharacterID *uuid.UUID       `json:"character_id,omitempty"`
}

type turnRequest struct {
	Action string           `json:"action"`
	State  models.GameState `json:"state"`
	Rules  []string         `json:"rules"`
}

type startGameResponse struct {
	Narrative []string      `json:"narrativa"`
	Choices   []string      `json:"escolhas"`
	Status    models.Status `json:"status"`
	Player    models.Actor  `json:"player"`
	Enemy     models.Actor  `json:"enemy"`
}

func newStartGameResponse(out *models.TurnOutcome) startGameResponse {
	return startGameResponse{
		Narrative: out.Narrative,
		Choices:   out.Choices,
		Status:    out.Status,
		Player:    out.Player,
		Enemy:     out.Enemy,
	}
}
