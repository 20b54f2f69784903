package models

// Side names one of the two combatants.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// ActorDelta is the change the model reports for one actor in a turn.
type ActorDelta struct {
	HPChange      int `json:"hp_change"`
	StaminaChange int `json:"stamina_change"`
}

// TurnResult summarises hp/stamina changes for both actors. The zero value is the default.
type TurnResult struct {
	Player ActorDelta `json:"player"`
	Enemy  ActorDelta `json:"enemy"`
}

// StatusPatch holds what the model said about each actor, if anything.
type StatusPatch struct {
	Player *ActorPatch `json:"player,omitempty"`
	Enemy  *ActorPatch `json:"enemy,omitempty"`
}

// IsEmpty reports whether the model reported nothing about either actor.
func (s StatusPatch) IsEmpty() bool {
	return s.Player.IsEmpty() && s.Enemy.IsEmpty()
}

// Status is the authoritative state of both actors after a merge.
type Status struct {
	Player Actor `json:"player"`
	Enemy  Actor `json:"enemy"`
}

// GameOver is attached to a turn outcome when the encounter concluded.
type GameOver struct {
	GameOver bool `json:"game_over"`
	Winner   Side `json:"winner"`
	Loser    Side `json:"loser"`
}

// Normalized is the canonical record extracted from a provider reply.
type Normalized struct {
	Narrative  []string    `json:"narrativa"`
	Choices    []string    `json:"escolhas"`
	Status     StatusPatch `json:"status"`
	TurnResult TurnResult  `json:"turn_result"`
	// Synthetic is set when no JSON could be recovered and the raw text became the narrative.
	Synthetic bool `json:"-"`
}

// TurnOutcome is what the resolver hands back for a start or a turn.
type TurnOutcome struct {
	Narrative  []string   `json:"narrativa"`
	Choices    []string   `json:"escolhas"`
	Status     Status     `json:"status"`
	TurnResult TurnResult `json:"turn_result"`
	Player     Actor      `json:"player"`
	Enemy      Actor      `json:"enemy"`
	GameOver   *GameOver  `json:"game_over,omitempty"`
	Phase      Phase      `json:"-"`
	Backend    string     `json:"-"`
}

// StartInput is the request to open an encounter.
type StartInput struct {
	State GameState
	Rules []string
}

// TurnInput is one player action against the current snapshot.
type TurnInput struct {
	Action string
	State  GameState
	Rules  []string
}
