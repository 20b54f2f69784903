package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpg_llm_requests_total",
			Help: "Total number of provider calls by outcome.",
		},
		[]string{"backend", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpg_llm_request_duration_seconds",
			Help:    "Histogram of provider call durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "model"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpg_llm_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100..2000
		},
		[]string{"backend", "model"},
	)
	completionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpg_llm_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(50, 50, 20), // 50..1000
		},
		[]string{"backend", "model"},
	)
	fallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rpg_llm_fallback_total",
			Help: "Number of calls answered with the static fallback reply.",
		},
	)
)

const (
	statusSuccess = "success"
	statusError   = "error"
	statusEmpty   = "error_empty_response"
	statusTimeout = "timeout"
)
