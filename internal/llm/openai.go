package llm

import (
	"context"
	"fmt"
	"net/http"

	openaigo "github.com/sashabaranov/go-openai"
)

// OpenAIBackend calls any OpenAI-compatible chat completion endpoint.
type OpenAIBackend struct {
	name   string
	model  string
	client *openaigo.Client
}

func NewOpenAIBackend(name, model, apiKey, baseURL string, httpClient *http.Client) *OpenAIBackend {
	cfg := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if name == "" {
		name = "openai"
	}
	return &OpenAIBackend{name: name, model: model, client: openaigo.NewClientWithConfig(cfg)}
}

func (b *OpenAIBackend) Name() string  { return b.name }
func (b *OpenAIBackend) Model() string { return b.model }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string, params GenerationParams) (string, UsageInfo, error) {
	var usage UsageInfo
	req := openaigo.ChatCompletionRequest{
		Model: b.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: intVal(params.MaxTokens),
	}
	if params.Temperature != nil {
		req.Temperature = float32(*params.Temperature)
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", usage, fmt.Errorf("%w: openai: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", usage, ErrEmptyReply
	}
	usage.PromptTokens = resp.Usage.PromptTokens
	usage.CompletionTokens = resp.Usage.CompletionTokens
	usage.TotalTokens = resp.Usage.TotalTokens
	return resp.Choices[0].Message.Content, usage, nil
}
