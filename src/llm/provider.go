// backend/src/llm/provider.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoAPIKey means no provider can be built and callers should use the rule-based engine.
var ErrNoAPIKey = errors.New("llm api key not configured")

// ErrEmptyResponse is returned when a provider answers without content.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Options tune a single completion.
type Options struct {
	JSON        bool
	Temperature float32
}

// Provider is a chat-completion capability: a system instruction and a user
// prompt in, response text out.
type Provider interface {
	Complete(ctx context.Context, system, prompt string, opts Options) (string, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	Model    string
	BaseURL  string // OpenAI-compatible endpoints only
}

// NewProvider builds the configured provider.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
