package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"rpg-server/internal/config"
)

// NewChain builds the configured backends in order. A backend that cannot be
// constructed is logged and left out.
func NewChain(ctx context.Context, backends []config.BackendConfig, logger *zap.Logger) []Link {
	chain := make([]Link, 0, len(backends))
	for _, bc := range backends {
		backend, err := newBackend(ctx, bc)
		if err != nil {
			logger.Error("Failed to create LLM backend, skipping",
				zap.String("backend", bc.Name), zap.String("type", bc.Type), zap.Error(err))
			continue
		}
		logger.Info("LLM backend configured",
			zap.String("backend", bc.Name), zap.String("type", bc.Type),
			zap.String("model", bc.Model), zap.Duration("timeout", bc.Timeout))
		chain = append(chain, Link{Backend: backend, Timeout: bc.Timeout})
	}
	return chain
}

func newBackend(ctx context.Context, bc config.BackendConfig) (Backend, error) {
	httpClient := &http.Client{}
	switch bc.Type {
	case config.BackendGemini:
		return NewGeminiBackend(ctx, bc.Name, bc.Model, bc.APIKey, bc.BaseURL, httpClient)
	case config.BackendOpenAI:
		return NewOpenAIBackend(bc.Name, bc.Model, bc.APIKey, bc.BaseURL, httpClient), nil
	case config.BackendOllama:
		return NewOllamaBackend(bc.Name, bc.Model, bc.BaseURL, httpClient)
	default:
		return nil, fmt.Errorf("unknown backend type %q", bc.Type)
	}
}
