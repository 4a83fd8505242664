// Package llm wraps the language model that narrates answers over the
// insight tool catalog. Only the pieces the tool-calling loop needs are
// exposed: a conversation message type that can carry tool calls and tool
// results, a small generation config, and the Client interface the
// composition root depends on.
package llm

import (
	"context"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/tools"
)

// Role identifies the originator of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single turn in the conversation. Assistant turns may carry
// tool calls; tool turns carry the JSON result of one executed tool together
// with the tool's name, so the model can match result to request.
type Message struct {
	Role      Role
	Content   string
	ToolCalls []*tools.ToolCall
	ToolName  string
}

// GenerationConfig controls the model's behavior for one request.
// A nil Temperature leaves the provider default in place.
type GenerationConfig struct {
	Model       string
	Temperature *float32
	MaxTokens   int
}

// Usage holds token accounting for a generation request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add accumulates usage across the turns of a tool loop.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// GenerationResult is the complete output of one model turn: either final
// text, or one or more tool calls to execute, or both.
type GenerationResult struct {
	Content   string
	ToolCalls []*tools.ToolCall
	Usage     Usage
}

// Client is the interface the tool-calling loop drives.
type Client interface {
	Generate(
		ctx context.Context,
		messages []Message,
		config *GenerationConfig,
		availableTools []tools.Tool,
	) (*GenerationResult, error)
}
