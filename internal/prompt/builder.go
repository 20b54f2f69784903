// Package prompt renders provider instructions from encounter state.
package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"rpg-server/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultLanguage is used when the builder is created without one.
const DefaultLanguage = "Brazilian Portuguese"

// Builder renders start and turn prompts. It is safe for concurrent use.
type Builder struct {
	tmpl     *template.Template
	language string
}

// NewBuilder parses the embedded templates.
func NewBuilder(language string) (*Builder, error) {
	tmpl, err := template.New("prompts").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return &Builder{tmpl: tmpl, language: language}, nil
}

type promptData struct {
	Language       string
	Chapter        string
	Narrative      string
	Player         string
	Enemy          string
	Action         string
	Rules          []string
	WithTurnResult bool
}

// StartPrompt renders the instruction that opens an encounter.
func (b *Builder) StartPrompt(chapter string, player, enemy models.Actor, rules []string) (string, error) {
	data, err := b.data(chapter, player, enemy, rules)
	if err != nil {
		return "", err
	}
	return b.render("start.tmpl", data)
}

// TurnPrompt renders the instruction for one player action.
func (b *Builder) TurnPrompt(state models.GameState, action string, rules []string) (string, error) {
	data, err := b.data(state.Chapter, state.Player, state.Enemy, rules)
	if err != nil {
		return "", err
	}
	data.Narrative = strings.TrimSpace(state.Narrative)
	data.Action = strings.TrimSpace(action)
	data.WithTurnResult = true
	return b.render("turn.tmpl", data)
}

func (b *Builder) data(chapter string, player, enemy models.Actor, rules []string) (promptData, error) {
	playerJSON, err := actorJSON(player)
	if err != nil {
		return promptData{}, fmt.Errorf("failed to encode player: %w", err)
	}
	enemyJSON, err := actorJSON(enemy)
	if err != nil {
		return promptData{}, fmt.Errorf("failed to encode enemy: %w", err)
	}
	return promptData{
		Language: b.language,
		Chapter:  strings.TrimSpace(chapter),
		Player:   playerJSON,
		Enemy:    enemyJSON,
		Rules:    cleanRules(rules),
	}, nil
}

func (b *Builder) render(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func actorJSON(a models.Actor) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func cleanRules(rules []string) []string {
	var out []string
	for _, r := range rules {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
