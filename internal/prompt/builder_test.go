package prompt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-server/internal/models"
)

var (
	hero = models.Actor{
		Name: "Zé do Caixão", HP: 100, MaxHP: 100, Stamina: 40, MaxStamina: 40,
		Inventory: []string{"faca", "vela"}, SpecialAttack: "Grito Sombrio",
	}
	legend = models.Actor{Name: "Saci", HP: 80, MaxHP: 80, Stamina: 60, MaxStamina: 60}
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder("")
	require.NoError(t, err)
	return b
}

func TestStartPrompt_IsDeterministic(t *testing.T) {
	b := newBuilder(t)

	first, err := b.StartPrompt("1", hero, legend, []string{"no magic"})
	require.NoError(t, err)
	second, err := b.StartPrompt("1", hero, legend, []string{"no magic"})
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("start prompt changed between renders (-first +second):\n%s", diff)
	}
}

func TestStartPrompt_Content(t *testing.T) {
	b := newBuilder(t)

	out, err := b.StartPrompt(" 1 ", hero, legend, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Chapter: 1\n")
	assert.Contains(t, out, `"nome":"Zé do Caixão"`)
	assert.Contains(t, out, `"inventario":["faca","vela"]`)
	assert.Contains(t, out, `"nome":"Saci"`)
	assert.Contains(t, out, "Write the narrative in "+DefaultLanguage)
	assert.Contains(t, out, `"narrativa": ["..."]`)
	assert.Contains(t, out, `"escolhas": ["...", "...", "..."]`)
	assert.NotContains(t, out, "turn_result", "start prompt does not ask for turn deltas")
	assert.Contains(t, out, "Extra rules:\n- (no extra rules)")
}

func TestTurnPrompt_Content(t *testing.T) {
	b := newBuilder(t)
	state := models.GameState{
		Player:    hero,
		Enemy:     legend,
		Chapter:   "2",
		Narrative: "O Saci roubou o cachimbo.",
	}

	out, err := b.TurnPrompt(state, "  chutar o saci ", []string{"  ", "the legend cannot die before turn 3"})
	require.NoError(t, err)

	assert.Contains(t, out, `The player typed: "chutar o saci"`)
	assert.Contains(t, out, "O Saci roubou o cachimbo.")
	assert.Contains(t, out, `"turn_result": {`)
	assert.Contains(t, out, "Respect the stamina")
	assert.Contains(t, out, "Extra rules:\n- the legend cannot die before turn 3\n")
	assert.NotContains(t, out, "(no extra rules)")
}

func TestTurnPrompt_EmptyNarrative(t *testing.T) {
	b := newBuilder(t)

	out, err := b.TurnPrompt(models.GameState{Player: hero, Enemy: legend, Chapter: "1"}, "wait", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "(the encounter has just begun)")
}

func TestBuilder_Language(t *testing.T) {
	b, err := NewBuilder("English")
	require.NoError(t, err)

	out, err := b.StartPrompt("1", hero, legend, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Write the narrative in English."))
}

func TestBuilder_DifferentInputsDifferentPrompts(t *testing.T) {
	b := newBuilder(t)
	hurt := hero
	hurt.HP = 10

	a, err := b.TurnPrompt(models.GameState{Player: hero, Enemy: legend}, "attack", nil)
	require.NoError(t, err)
	c, err := b.TurnPrompt(models.GameState{Player: hurt, Enemy: legend}, "attack", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, cmp.Diff(a, c))
}
