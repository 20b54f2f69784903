package interfaces

import (
	"context"

	"rpg-server/internal/llm"
	"rpg-server/internal/models"
)

// Generator returns provider text for a prompt. It never fails; a fallback reply is
// flagged on the Generation.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int) llm.Generation
}

// PromptBuilder renders provider instructions.
type PromptBuilder interface {
	StartPrompt(chapter string, player, enemy models.Actor, rules []string) (string, error)
	TurnPrompt(state models.GameState, action string, rules []string) (string, error)
}

// EncounterService resolves encounter starts and turns.
type EncounterService interface {
	Start(ctx context.Context, in models.StartInput) (*models.TurnOutcome, error)
	Turn(ctx context.Context, in models.TurnInput) (*models.TurnOutcome, error)
}

// EventPublisher delivers encounter lifecycle events to a broker.
type EventPublisher interface {
	PublishEncounterEvent(ctx context.Context, event models.EncounterEvent) error
}
