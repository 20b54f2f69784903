// Package llm talks to generative-text providers through an ordered fallback chain.
package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailed wraps every provider failure.
var ErrGenerationFailed = errors.New("text generation failed")

// ErrEmptyReply is returned when a provider answers with no text.
var ErrEmptyReply = errors.New("provider returned an empty reply")

// GenerationParams are per-call sampling options. Nil fields use the provider default.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
}

// UsageInfo is the token accounting reported by a provider.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Backend is one provider in the chain.
type Backend interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, UsageInfo, error)
}

// Generation is the result of a Gateway call.
type Generation struct {
	Text     string
	Backend  string
	Usage    UsageInfo
	Fallback bool
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
