// Package engine resolves encounter starts and turns against a text provider.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
	"rpg-server/internal/normalize"
)

// Config holds the output token budgets of each operation.
type Config struct {
	StartMaxTokens int
	TurnMaxTokens  int
}

// Resolver is stateless; every call is an independent unit of work.
type Resolver struct {
	gen        interfaces.Generator
	prompts    interfaces.PromptBuilder
	normalizer *normalize.Normalizer
	events     interfaces.EventPublisher
	cfg        Config
	logger     *zap.Logger
	now        func() time.Time
}

// NewResolver wires the pipeline. events may be nil.
func NewResolver(
	gen interfaces.Generator,
	prompts interfaces.PromptBuilder,
	normalizer *normalize.Normalizer,
	events interfaces.EventPublisher,
	cfg Config,
	logger *zap.Logger,
) *Resolver {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	return &Resolver{
		gen:        gen,
		prompts:    prompts,
		normalizer: normalizer,
		events:     events,
		cfg:        cfg,
		logger:     logger.Named("resolver"),
		now:        time.Now,
	}
}

var _ interfaces.EncounterService = (*Resolver)(nil)

// Start opens an encounter. Missing status is filled from the input actors.
func (r *Resolver) Start(ctx context.Context, in models.StartInput) (*models.TurnOutcome, error) {
	state := in.State
	if err := state.Validate(); err != nil {
		encounterOutcomes.WithLabelValues(opStart, resultRejected).Inc()
		return nil, err
	}

	prompt, err := r.prompts.StartPrompt(state.Chapter, state.Player, state.Enemy, in.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build start prompt: %w", err)
	}

	gen := r.gen.Generate(ctx, prompt, r.cfg.StartMaxTokens)
	norm := r.normalizer.Normalize(gen.Text)
	if err := checkContract(norm); err != nil {
		encounterOutcomes.WithLabelValues(opStart, resultIncomplete).Inc()
		return nil, err
	}

	player := FillActorState(norm.Status.Player, state.Player)
	enemy := FillActorState(norm.Status.Enemy, state.Enemy)
	out := r.outcome(norm, player, enemy, gen.Backend)
	out.Phase = models.PhaseInProgress

	r.logger.Info("Encounter started",
		zap.String("chapter", state.Chapter),
		zap.String("player", state.Player.Name),
		zap.String("enemy", state.Enemy.Name),
		zap.String("backend", gen.Backend),
		zap.Bool("fallback", gen.Fallback),
		zap.Bool("synthetic", norm.Synthetic))
	encounterOutcomes.WithLabelValues(opStart, resultLabel(gen.Fallback, nil)).Inc()

	r.publish(ctx, models.EncounterEvent{
		Type:       models.EventEncounterStarted,
		Chapter:    state.Chapter,
		PlayerName: state.Player.Name,
		EnemyName:  state.Enemy.Name,
		Backend:    gen.Backend,
	})
	return out, nil
}

// Turn resolves one player action. The reported status wins over turn_result deltas;
// when status is missing the pre-turn actors are carried over.
func (r *Resolver) Turn(ctx context.Context, in models.TurnInput) (*models.TurnOutcome, error) {
	state := in.State
	if err := state.Validate(); err != nil {
		encounterOutcomes.WithLabelValues(opTurn, resultRejected).Inc()
		return nil, err
	}
	if strings.TrimSpace(in.Action) == "" {
		encounterOutcomes.WithLabelValues(opTurn, resultRejected).Inc()
		return nil, fmt.Errorf("%w: action is required", models.ErrInvalidAction)
	}
	if state.Phase() == models.PhaseConcluded {
		encounterOutcomes.WithLabelValues(opTurn, resultRejected).Inc()
		return nil, fmt.Errorf("%w: %s has no hp left", models.ErrEncounterConcluded, defeatedName(state))
	}

	prompt, err := r.prompts.TurnPrompt(state, in.Action, in.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build turn prompt: %w", err)
	}

	gen := r.gen.Generate(ctx, prompt, r.cfg.TurnMaxTokens)
	norm := r.normalizer.Normalize(gen.Text)
	if err := checkContract(norm); err != nil {
		encounterOutcomes.WithLabelValues(opTurn, resultIncomplete).Inc()
		return nil, err
	}

	player := FillActorState(norm.Status.Player, state.Player)
	enemy := FillActorState(norm.Status.Enemy, state.Enemy)
	gameOver := CheckGameOver(player, enemy)

	out := r.outcome(norm, player, enemy, gen.Backend)
	out.GameOver = gameOver
	out.Phase = models.PhaseInProgress
	if gameOver != nil {
		out.Phase = models.PhaseConcluded
	}

	log := r.logger.With(
		zap.String("chapter", state.Chapter),
		zap.String("backend", gen.Backend),
		zap.Bool("fallback", gen.Fallback),
		zap.Int("player_hp", player.HP),
		zap.Int("enemy_hp", enemy.HP))
	encounterOutcomes.WithLabelValues(opTurn, resultLabel(gen.Fallback, gameOver)).Inc()

	if gameOver == nil {
		log.Debug("Turn resolved")
		return out, nil
	}

	log.Info("Encounter concluded", zap.String("winner", string(gameOver.Winner)))
	r.publish(ctx, models.EncounterEvent{
		Type:       models.EventEncounterConcluded,
		Chapter:    state.Chapter,
		PlayerName: player.Name,
		EnemyName:  enemy.Name,
		Winner:     gameOver.Winner,
		Loser:      gameOver.Loser,
		Backend:    gen.Backend,
	})
	return out, nil
}

// outcome mirrors the merged actors into status. Displayed values are clamped after
// game-over was decided on the raw ones.
func (r *Resolver) outcome(norm models.Normalized, player, enemy models.Actor, backend string) *models.TurnOutcome {
	player, enemy = player.Clamped(), enemy.Clamped()
	return &models.TurnOutcome{
		Narrative:  norm.Narrative,
		Choices:    norm.Choices,
		Status:     models.Status{Player: player, Enemy: enemy},
		TurnResult: norm.TurnResult,
		Player:     player,
		Enemy:      enemy,
		Backend:    backend,
	}
}

func (r *Resolver) publish(ctx context.Context, event models.EncounterEvent) {
	if r.events == nil {
		return
	}
	event.OccurredAt = r.now().UTC()
	if err := r.events.PublishEncounterEvent(ctx, event); err != nil {
		r.logger.Warn("Failed to publish encounter event", zap.String("type", event.Type), zap.Error(err))
	}
}

func checkContract(norm models.Normalized) error {
	var missing []string
	if norm.Narrative == nil {
		missing = append(missing, "narrativa")
	}
	if len(norm.Choices) == 0 {
		missing = append(missing, "escolhas")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", models.ErrIncompleteOutcome, strings.Join(missing, ", "))
	}
	return nil
}

func resultLabel(fallback bool, gameOver *models.GameOver) string {
	switch {
	case gameOver != nil && gameOver.Winner == models.SidePlayer:
		return resultPlayerWon
	case gameOver != nil:
		return resultEnemyWon
	case fallback:
		return resultFallback
	default:
		return resultInProgress
	}
}

func defeatedName(state models.GameState) string {
	if state.Player.Defeated() {
		return "player " + state.Player.Name
	}
	return "enemy " + state.Enemy.Name
}

// IsClientError reports whether err is caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, models.ErrInvalidGameState) ||
		errors.Is(err, models.ErrInvalidAction) ||
		errors.Is(err, models.ErrEncounterConcluded)
}
