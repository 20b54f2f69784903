package models

import "time"

// Encounter event types published to the broker.
const (
	EventEncounterStarted   = "encounter.started"
	EventEncounterConcluded = "encounter.concluded"
)

// EncounterEvent is emitted when an encounter opens or reaches game-over.
type EncounterEvent struct {
	Type       string    `json:"type"`
	Chapter    string    `json:"chapter"`
	PlayerName string    `json:"player_name"`
	EnemyName  string    `json:"enemy_name"`
	Winner     Side      `json:"winner,omitempty"`
	Loser      Side      `json:"loser,omitempty"`
	Backend    string    `json:"backend,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
