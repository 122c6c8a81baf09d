package llm

import (
	"context"
	"fmt"

	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

// Default models per provider. Overridable via DGI_LLM_MODEL.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
)

// Message is one turn of a conversation
type Message struct {
	Role       string     `json:"role"` // system | user | assistant | tool
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant turns only
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool turns only
}

// ToolCall is a function invocation requested by the model
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON
}

// ToolDefinition describes a callable function to the model
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"` // JSON schema
}

// Response is the model's reply for one request
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
}

// HasToolCalls reports whether the model asked to invoke a tool
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Provider is a chat completion backend
// ⭐ SSOT: provider 선택은 New()에서만
type Provider interface {
	Name() string
	Model() string
	Chat(ctx context.Context, messages []Message, tools []ToolDefinition) (*Response, error)
}

// New builds the provider selected by cfg.Provider
func New(cfg config.LLMConfig, log *logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return newOpenAI(cfg, log), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
		return newAnthropic(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (want 'openai' or 'anthropic')", cfg.Provider)
	}
}
