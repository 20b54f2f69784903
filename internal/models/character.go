package models

import (
	"time"

	"github.com/google/uuid"
)

// Character is a player-authored combatant stored per owner.
type Character struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerUsername string    `json:"owner_username" db:"owner_username"`
	Name          string    `json:"nome" db:"nome"`
	Role          string    `json:"role" db:"role"`
	CurrentHP     int       `json:"hpAtual" db:"hp_atual"`
	Stamina       int       `json:"stamina" db:"stamina"`
	SpecialAttack string    `json:"ataqueEspecial" db:"ataque_especial"`
	Inventory     []string  `json:"inventario" db:"inventario"`
	Image         string    `json:"image" db:"image"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CharacterInput carries the mutable fields of a character.
type CharacterInput struct {
	Name          string   `json:"nome" binding:"required"`
	Role          string   `json:"role" binding:"required"`
	CurrentHP     int      `json:"hpAtual" binding:"min=1"`
	Stamina       int      `json:"stamina" binding:"min=1"`
	SpecialAttack string   `json:"ataqueEspecial"`
	Inventory     []string `json:"inventario"`
	Image         string   `json:"image"`
}

// AsActor turns a stored character into a full-health encounter actor.
func (c Character) AsActor() Actor {
	return Actor{
		Name:          c.Name,
		HP:            c.CurrentHP,
		MaxHP:         c.CurrentHP,
		Stamina:       c.Stamina,
		MaxStamina:    c.Stamina,
		Inventory:     c.Inventory,
		SpecialAttack: c.SpecialAttack,
		Class:         c.Role,
	}
}
