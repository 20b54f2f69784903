// Package normalize turns free-form provider replies into the canonical encounter record.
//
// Normalize never fails: unparseable text degrades to a synthetic record whose only
// narrative line is the raw reply.
package normalize

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"rpg-server/internal/models"
)

// DefaultChoices are offered when the provider suggests none.
var DefaultChoices = []string{"Attack", "Defend", "Use Item"}

// Normalizer holds the configured fallback choices.
type Normalizer struct {
	defaultChoices []string
}

// New returns a Normalizer. An empty list falls back to DefaultChoices.
func New(defaultChoices []string) *Normalizer {
	choices := cleanStrings(defaultChoices)
	if len(choices) == 0 {
		choices = DefaultChoices
	}
	return &Normalizer{defaultChoices: choices}
}

var std = New(nil)

// Normalize uses the package defaults.
func Normalize(raw string) models.Normalized {
	return std.Normalize(raw)
}

// DefaultChoices returns a copy of the configured fallback choices.
func (n *Normalizer) DefaultChoices() []string {
	return append([]string(nil), n.defaultChoices...)
}

// FallbackText is a minimal reply that normalizes to an empty narrative with the default choices.
func (n *Normalizer) FallbackText() string {
	body, _ := json.Marshal(map[string]any{
		"narrativa": []string{},
		"escolhas":  n.defaultChoices,
	})
	return string(body)
}

// Normalize extracts the canonical record from raw provider text.
func (n *Normalizer) Normalize(raw string) models.Normalized {
	data, ok := decodeObject(raw)
	if !ok {
		return n.synthetic(raw)
	}

	return models.Normalized{
		Narrative:  narrativeLines(data["narrativa"]),
		Choices:    n.choices(data),
		Status:     statusPatch(data["status"]),
		TurnResult: turnResult(data["turn_result"]),
	}
}

// synthetic keeps the raw reply verbatim. Blank replies never get here from the Gateway,
// which treats them as a failed attempt.
func (n *Normalizer) synthetic(raw string) models.Normalized {
	return models.Normalized{
		Narrative: []string{raw},
		Choices:   n.DefaultChoices(),
		Synthetic: true,
	}
}

func (n *Normalizer) choices(data map[string]any) []string {
	for _, key := range []string{"escolhas", "choices"} {
		if choices := stringList(data[key]); len(choices) > 0 {
			return choices
		}
	}
	return n.DefaultChoices()
}

// StripFence removes a leading ```lang line and a trailing ``` marker.
func StripFence(text string) string {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```") {
		if nl := strings.IndexByte(clean, '\n'); nl >= 0 {
			clean = clean[nl+1:]
		} else {
			clean = strings.TrimPrefix(clean, "```")
		}
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

// decodeObject runs the recovery ladder: fence strip, direct parse, first '{' to last '}'.
func decodeObject(raw string) (map[string]any, bool) {
	clean := StripFence(raw)
	if data, ok := parseObject(clean); ok {
		return data, true
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return parseObject(clean[start : end+1])
}

func parseObject(text string) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil || data == nil {
		return nil, false
	}
	// Anything but EOF after the object, including a stray '}', rejects the text.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, false
	}
	return data, true
}

func narrativeLines(v any) []string {
	switch t := v.(type) {
	case []any:
		lines := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := toString(item); ok {
				lines = append(lines, s)
			}
		}
		return lines
	case string:
		return splitLines(t)
	default:
		return []string{}
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := toString(item); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		return splitLines(t)
	default:
		return nil
	}
}

func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func statusPatch(v any) models.StatusPatch {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.StatusPatch{}
	}
	return models.StatusPatch{
		Player: actorPatch(obj["player"]),
		Enemy:  actorPatch(obj["enemy"]),
	}
}

func actorPatch(v any) *models.ActorPatch {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	p := &models.ActorPatch{
		Name:          stringField(obj, "nome", "name"),
		HP:            intField(obj, "hp"),
		MaxHP:         intField(obj, "max_hp", "maxHp"),
		Stamina:       intField(obj, "stamina"),
		MaxStamina:    intField(obj, "max_stamina", "maxStamina"),
		Description:   stringField(obj, "descricao", "description"),
		SpecialAttack: stringField(obj, "ataque_especial", "specialAttack"),
		Class:         stringField(obj, "classe", "class"),
	}
	for _, key := range []string{"inventario", "inventory"} {
		if raw, present := obj[key]; present {
			if items := stringList(raw); items != nil {
				p.Inventory = items
			} else {
				p.Inventory = []string{}
			}
			break
		}
	}
	if p.IsEmpty() {
		return nil
	}
	return p
}

func turnResult(v any) models.TurnResult {
	var tr models.TurnResult
	obj, ok := v.(map[string]any)
	if !ok {
		return tr
	}
	mergeDelta(&tr.Player, obj["player"])
	mergeDelta(&tr.Enemy, obj["enemy"])
	return tr
}

// mergeDelta overwrites only the keys the model supplied.
func mergeDelta(d *models.ActorDelta, v any) {
	obj, ok := v.(map[string]any)
	if !ok {
		return
	}
	if hp := intField(obj, "hp_change", "hpChange"); hp != nil {
		d.HPChange = *hp
	}
	if st := intField(obj, "stamina_change", "staminaChange"); st != nil {
		d.StaminaChange = *st
	}
}
