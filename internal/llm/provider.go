package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/annekroon/respond-media/internal/model"
)

// Provider defines the interface for chat-completion model services
type Provider interface {
	// Name returns the provider name
	Name() string

	// Chat sends one prompt exchange and returns the response text.
	// Any failure (transport, HTTP status, empty content) comes back as
	// an error; callers recover at the item level and never abort a batch.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// ChatMessage is one message of a chat exchange
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest contains the input for one model call
type ChatRequest struct {
	// Model overrides the configured model when non-empty
	Model string

	// Messages is the full exchange sent to the service
	Messages []ChatMessage

	// Temperature for this call
	Temperature float64

	// MaxTokens caps the response length (0 = provider default)
	MaxTokens int
}

// UserMessage builds a single-turn request
func UserMessage(content string) []ChatMessage {
	return []ChatMessage{{Role: "user", Content: content}}
}

// SystemAndUser builds a system-primed single-turn request
func SystemAndUser(system, user string) []ChatMessage {
	return []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// ErrEmptyResponse reports that the service answered but returned no
// usable content
var ErrEmptyResponse = errors.New("empty response from model service")

// StatusError reports a non-OK HTTP status from the model service
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, strings.TrimSpace(e.Body))
}

// Config holds model service configuration
type Config struct {
	// Provider name: "ollama", "openai", "anthropic"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for the service endpoint (e.g. Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// Temperature default for calls that do not override it
	Temperature float64

	// MaxTokens default cap for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		Temperature: mc.Temperature,
		MaxTokens:   mc.MaxTokens,
	}
}
