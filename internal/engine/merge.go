package engine

import "rpg-server/internal/models"

// FillActorState overlays the fields a provider reported on the base actor.
// A nil patch yields base unchanged.
func FillActorState(patch *models.ActorPatch, base models.Actor) models.Actor {
	if patch == nil {
		return base
	}
	out := base
	if patch.Name != nil && *patch.Name != "" {
		out.Name = *patch.Name
	}
	if patch.HP != nil {
		out.HP = *patch.HP
	}
	if patch.MaxHP != nil && *patch.MaxHP > 0 {
		out.MaxHP = *patch.MaxHP
	}
	if patch.Stamina != nil {
		out.Stamina = *patch.Stamina
	}
	if patch.MaxStamina != nil && *patch.MaxStamina > 0 {
		out.MaxStamina = *patch.MaxStamina
	}
	if patch.Inventory != nil {
		out.Inventory = append(make([]string, 0, len(patch.Inventory)), patch.Inventory...)
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.SpecialAttack != nil {
		out.SpecialAttack = *patch.SpecialAttack
	}
	if patch.Class != nil {
		out.Class = *patch.Class
	}
	return out
}
