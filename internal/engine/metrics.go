package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var encounterOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rpg_encounter_outcomes_total",
		Help: "Encounter starts and turns by result.",
	},
	[]string{"operation", "result"},
)

const (
	opStart = "start"
	opTurn  = "turn"

	resultInProgress = "in_progress"
	resultPlayerWon  = "player_won"
	resultEnemyWon   = "enemy_won"
	resultFallback   = "fallback"
	resultRejected   = "rejected"
	resultIncomplete = "incomplete"
)
