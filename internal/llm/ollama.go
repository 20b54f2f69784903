package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaBackend calls the native Ollama chat API without streaming.
type OllamaBackend struct {
	name   string
	model  string
	client *api.Client
}

func NewOllamaBackend(name, model, baseURL string, httpClient *http.Client) (*OllamaBackend, error) {
	// api.NewClient wants the host root, not the OpenAI-compatible /v1 prefix.
	base := strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url '%s': %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if name == "" {
		name = "ollama"
	}
	return &OllamaBackend{name: name, model: model, client: api.NewClient(parsed, httpClient)}, nil
}

func (b *OllamaBackend) Name() string  { return b.name }
func (b *OllamaBackend) Model() string { return b.model }

func (b *OllamaBackend) Generate(ctx context.Context, prompt string, params GenerationParams) (string, UsageInfo, error) {
	var usage UsageInfo
	stream := false
	options := map[string]interface{}{}
	if params.Temperature != nil {
		options["temperature"] = *params.Temperature
	}
	if params.MaxTokens != nil {
		options["num_predict"] = *params.MaxTokens
	}
	req := &api.ChatRequest{
		Model:    b.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  options,
	}

	var final api.ChatResponse
	err := b.client.Chat(ctx, req, func(r api.ChatResponse) error {
		final = r
		return nil
	})
	if err != nil {
		return "", usage, fmt.Errorf("%w: ollama: %v", ErrGenerationFailed, err)
	}
	usage.PromptTokens = final.PromptEvalCount
	usage.CompletionTokens = final.EvalCount
	usage.TotalTokens = final.PromptEvalCount + final.EvalCount
	return final.Message.Content, usage, nil
}
