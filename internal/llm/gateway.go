package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one backend attempt when the link sets none.
const DefaultTimeout = 15 * time.Second

// Link is one step of the fallback chain.
type Link struct {
	Backend Backend
	Timeout time.Duration
}

// Gateway tries each backend in order and answers with the static fallback when all fail.
// Calls are strictly sequential and there are no retries inside a backend.
type Gateway struct {
	chain       []Link
	fallback    *StaticBackend
	temperature *float64
	counter     TokenCounter
	logger      *zap.Logger
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithTemperature sets the sampling temperature sent to every backend.
func WithTemperature(t float64) GatewayOption {
	return func(g *Gateway) { g.temperature = &t }
}

// WithTokenCounter estimates prompt tokens for backends that report no usage.
func WithTokenCounter(c TokenCounter) GatewayOption {
	return func(g *Gateway) { g.counter = c }
}

func NewGateway(chain []Link, fallbackText string, logger *zap.Logger, opts ...GatewayOption) *Gateway {
	links := make([]Link, 0, len(chain))
	for _, l := range chain {
		if l.Backend == nil {
			continue
		}
		if l.Timeout <= 0 {
			l.Timeout = DefaultTimeout
		}
		links = append(links, l)
	}
	g := &Gateway{
		chain:    links,
		fallback: NewStaticBackend(fallbackText),
		logger:   logger.Named("llm_gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Backends returns the chain names in call order.
func (g *Gateway) Backends() []string {
	names := make([]string, len(g.chain))
	for i, l := range g.chain {
		names[i] = l.Backend.Name()
	}
	return names
}

// Generate never fails: when every backend errors, times out or the caller goes away,
// the static fallback text is returned with Fallback set.
func (g *Gateway) Generate(ctx context.Context, prompt string, maxOutputTokens int) Generation {
	params := GenerationParams{Temperature: g.temperature}
	if maxOutputTokens > 0 {
		params.MaxTokens = &maxOutputTokens
	}

	for i, link := range g.chain {
		if err := ctx.Err(); err != nil {
			g.logger.Warn("Request context done, skipping remaining backends",
				zap.Int("skipped", len(g.chain)-i), zap.Error(err))
			break
		}

		text, usage, err := g.attempt(ctx, link, prompt, params)
		if err != nil {
			continue
		}
		return Generation{Text: text, Backend: link.Backend.Name(), Usage: usage}
	}

	fallbackTotal.Inc()
	text, _, _ := g.fallback.Generate(ctx, prompt, params)
	g.logger.Warn("All backends failed, answering with static fallback", zap.Strings("chain", g.Backends()))
	return Generation{Text: text, Backend: g.fallback.Name(), Fallback: true}
}

func (g *Gateway) attempt(ctx context.Context, link Link, prompt string, params GenerationParams) (string, UsageInfo, error) {
	name, model := link.Backend.Name(), link.Backend.Model()
	log := g.logger.With(zap.String("backend", name), zap.String("model", model))

	callCtx, cancel := context.WithTimeout(ctx, link.Timeout)
	defer cancel()

	start := time.Now()
	text, usage, err := link.Backend.Generate(callCtx, prompt, params)
	duration := time.Since(start)
	requestDuration.WithLabelValues(name, model).Observe(duration.Seconds())

	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyReply
	}
	if err != nil {
		status := statusError
		switch {
		case errors.Is(err, ErrEmptyReply):
			status = statusEmpty
		case errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			status = statusTimeout
		}
		requestsTotal.WithLabelValues(name, model, status).Inc()
		log.Warn("Backend call failed", zap.String("status", status), zap.Duration("duration", duration), zap.Error(err))
		return "", UsageInfo{}, err
	}

	if usage.PromptTokens == 0 && g.counter != nil {
		usage.PromptTokens = g.counter.Count(model, prompt)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	requestsTotal.WithLabelValues(name, model, statusSuccess).Inc()
	if usage.PromptTokens > 0 {
		promptTokens.WithLabelValues(name, model).Observe(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		completionTokens.WithLabelValues(name, model).Observe(float64(usage.CompletionTokens))
	}
	log.Debug("Backend call succeeded",
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Int("reply_length", len(text)))
	return text, usage, nil
}
