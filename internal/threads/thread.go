// Package threads persists conversation transcripts keyed by thread id.
package threads

import (
	"time"

	"github.com/cloudwego/eino/schema"
)

// Meta holds metadata about one conversation thread.
type Meta struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// ToolCall records a tool invocation requested by an assistant message.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is a single turn in a conversation, serializable to JSONL.
// Tool-call metadata is kept so assistant/tool pairs survive a restart.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Ts         time.Time  `json:"ts"`
}

// ToSchemaMessage converts a thread Message to an Eino schema.Message.
func (m Message) ToSchemaMessage() *schema.Message {
	msg := &schema.Message{
		Role:       schema.RoleType(m.Role),
		Content:    m.Content,
		ToolCallID: m.ToolCallID,
	}
	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, schema.ToolCall{
			ID: tc.ID,
			Function: schema.FunctionCall{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	return msg
}

// NewMessageFromSchema converts an Eino schema.Message to a thread Message.
func NewMessageFromSchema(msg *schema.Message) Message {
	m := Message{
		Role:       string(msg.Role),
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
		Ts:         time.Now(),
	}
	for _, tc := range msg.ToolCalls {
		m.ToolCalls = append(m.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return m
}

// Store defines the persistence interface for thread transcripts.
type Store interface {
	Load(threadID string) ([]Message, error)
	Append(threadID string, msg Message) error
	Meta(threadID string) (*Meta, error)
}
