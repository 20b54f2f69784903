package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"rpg-server/internal/utils"
)

// Supported backend types.
const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
)

// BackendConfig is one entry of the provider fallback chain.
type BackendConfig struct {
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"base_url"`
	APIKeySecret string        `yaml:"api_key_secret"`
	Timeout      time.Duration `yaml:"timeout"`

	APIKey string `yaml:"-"`
}

type backendsFile struct {
	Backends []BackendConfig `yaml:"backends"`
}

// LoadBackendsFile reads an ordered backend chain from a YAML file.
//
//	backends:
//	  - name: gemini-flash
//	    type: gemini
//	    model: gemini-2.0-flash
//	    api_key_secret: gemini_api_key
//	  - name: local
//	    type: ollama
//	    model: llama3
//	    base_url: http://ollama:11434
//	    timeout: 30s
func LoadBackendsFile(path string) ([]BackendConfig, error) {
	var file backendsFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read backends file %s: %w", path, err)
	}
	for i, b := range file.Backends {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("backend #%d in %s: %w", i+1, path, err)
		}
	}
	return file.Backends, nil
}

func (b BackendConfig) validate() error {
	switch b.Type {
	case BackendGemini, BackendOpenAI, BackendOllama:
	default:
		return fmt.Errorf("unknown backend type %q", b.Type)
	}
	if strings.TrimSpace(b.Model) == "" {
		return fmt.Errorf("backend %q has no model", b.Name)
	}
	if b.Timeout < 0 {
		return fmt.Errorf("backend %q has a negative timeout", b.Name)
	}
	return nil
}

// resolveBackends builds the chain from the backends file when set, otherwise from env.
// Backends whose API key secret is missing are skipped.
func (c *Config) resolveBackends() ([]BackendConfig, error) {
	var candidates []BackendConfig
	if c.BackendsFile != "" {
		fromFile, err := LoadBackendsFile(c.BackendsFile)
		if err != nil {
			return nil, err
		}
		candidates = fromFile
	} else {
		candidates = c.defaultBackends()
	}

	resolved := make([]BackendConfig, 0, len(candidates))
	for _, b := range candidates {
		if b.Name == "" {
			b.Name = b.Type + ":" + b.Model
		}
		if b.Timeout == 0 {
			b.Timeout = c.Timeout
		}
		if b.APIKeySecret != "" {
			key, err := utils.ReadSecret(c.SecretsDir, b.APIKeySecret)
			if err != nil {
				log.Printf("Skipping LLM backend '%s': %v", b.Name, err)
				continue
			}
			b.APIKey = key
		} else if b.Type != BackendOllama {
			log.Printf("Skipping LLM backend '%s': no api_key_secret configured", b.Name)
			continue
		}
		resolved = append(resolved, b)
	}
	return resolved, nil
}

func (c *Config) defaultBackends() []BackendConfig {
	backends := []BackendConfig{{
		Name:         "gemini",
		Type:         BackendGemini,
		Model:        c.GeminiModel,
		BaseURL:      c.GeminiBaseURL,
		APIKeySecret: "gemini_api_key",
	}}
	if c.OpenAIModel != "" {
		backends = append(backends, BackendConfig{
			Name:         "openai",
			Type:         BackendOpenAI,
			Model:        c.OpenAIModel,
			BaseURL:      c.OpenAIBaseURL,
			APIKeySecret: "openai_api_key",
		})
	}
	if c.OllamaModel != "" {
		backends = append(backends, BackendConfig{
			Name:    "ollama",
			Type:    BackendOllama,
			Model:   c.OllamaModel,
			BaseURL: c.OllamaBaseURL,
		})
	}
	return backends
}
