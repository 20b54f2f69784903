package models

import (
	"fmt"
	"strings"
)

// Actor is a combatant of an encounter: the player's character or the enemy.
type Actor struct {
	Name          string   `json:"nome"`
	HP            int      `json:"hp"`
	MaxHP         int      `json:"max_hp"`
	Stamina       int      `json:"stamina"`
	MaxStamina    int      `json:"max_stamina"`
	Inventory     []string `json:"inventario,omitempty"`
	Description   string   `json:"descricao,omitempty"`
	SpecialAttack string   `json:"ataque_especial,omitempty"`
	Class         string   `json:"classe,omitempty"`
}

// Defeated reports whether the actor has no hit points left.
// Values below zero count as defeat; nothing is clamped here.
func (a Actor) Defeated() bool {
	return a.HP <= 0
}

// Clamped returns a copy with hp and stamina bounded to [0, max].
// An upper bound is only applied when the maximum is positive.
func (a Actor) Clamped() Actor {
	a.HP = clamp(a.HP, a.MaxHP)
	a.Stamina = clamp(a.Stamina, a.MaxStamina)
	return a
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// Validate reports every reason the actor cannot be sent to a provider.
func (a Actor) Validate(role string) error {
	var problems []string
	if strings.TrimSpace(a.Name) == "" {
		problems = append(problems, "nome is required")
	}
	if a.MaxHP <= 0 {
		problems = append(problems, fmt.Sprintf("max_hp must be positive, got %d", a.MaxHP))
	}
	if a.MaxStamina <= 0 {
		problems = append(problems, fmt.Sprintf("max_stamina must be positive, got %d", a.MaxStamina))
	}
	if a.HP < 0 || (a.MaxHP > 0 && a.HP > a.MaxHP) {
		problems = append(problems, fmt.Sprintf("hp must be within [0, %d], got %d", a.MaxHP, a.HP))
	}
	if a.Stamina < 0 || (a.MaxStamina > 0 && a.Stamina > a.MaxStamina) {
		problems = append(problems, fmt.Sprintf("stamina must be within [0, %d], got %d", a.MaxStamina, a.Stamina))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidGameState, role, strings.Join(problems, "; "))
	}
	return nil
}

// ActorPatch is the partial actor state a provider reports back.
// Nil fields were not mentioned by the model.
type ActorPatch struct {
	Name          *string  `json:"nome,omitempty"`
	HP            *int     `json:"hp,omitempty"`
	MaxHP         *int     `json:"max_hp,omitempty"`
	Stamina       *int     `json:"stamina,omitempty"`
	MaxStamina    *int     `json:"max_stamina,omitempty"`
	Inventory     []string `json:"inventario,omitempty"`
	Description   *string  `json:"descricao,omitempty"`
	SpecialAttack *string  `json:"ataque_especial,omitempty"`
	Class         *string  `json:"classe,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p *ActorPatch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == nil && p.HP == nil && p.MaxHP == nil && p.Stamina == nil && p.MaxStamina == nil &&
		p.Inventory == nil && p.Description == nil && p.SpecialAttack == nil && p.Class == nil
}

// GameState is the snapshot of an encounter owned by the caller.
type GameState struct {
	Player    Actor    `json:"player"`
	Enemy     Actor    `json:"enemy"`
	Chapter   string   `json:"chapter"`
	Narrative string   `json:"narrative"`
	Choices   []string `json:"choices"`
}

// Validate checks both actors.
func (s GameState) Validate() error {
	if err := s.Player.Validate("player"); err != nil {
		return err
	}
	return s.Enemy.Validate("enemy")
}

// Phase derives the encounter phase from the snapshot.
func (s GameState) Phase() Phase {
	if s.Player.Defeated() || s.Enemy.Defeated() {
		return PhaseConcluded
	}
	return PhaseInProgress
}

// Phase is the lifecycle position of an encounter.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseConcluded  Phase = "concluded"
)
