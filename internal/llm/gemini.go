package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini generateContent endpoint.
type GeminiBackend struct {
	name   string
	model  string
	client *genai.Client
}

// NewGeminiBackend builds a Gemini API client. An empty baseURL uses the public endpoint.
func NewGeminiBackend(ctx context.Context, name, model, apiKey, baseURL string, httpClient *http.Client) (*GeminiBackend, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if name == "" {
		name = "gemini"
	}
	return &GeminiBackend{name: name, model: model, client: client}, nil
}

func (b *GeminiBackend) Name() string  { return b.name }
func (b *GeminiBackend) Model() string { return b.model }

func (b *GeminiBackend) Generate(ctx context.Context, prompt string, params GenerationParams) (string, UsageInfo, error) {
	var usage UsageInfo
	config := &genai.GenerateContentConfig{}
	if params.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*params.Temperature))
	}
	if params.MaxTokens != nil {
		config.MaxOutputTokens = int32(*params.MaxTokens)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", usage, fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	if meta := resp.UsageMetadata; meta != nil {
		usage.PromptTokens = int(meta.PromptTokenCount)
		usage.CompletionTokens = int(meta.CandidatesTokenCount)
		usage.TotalTokens = int(meta.TotalTokenCount)
	}
	return resp.Text(), usage, nil
}
