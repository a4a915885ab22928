// Package llm defines the chat-completion types and the Provider interface
// that EduGenie uses to talk to a language model. Implementations provide
// the actual transport to a specific endpoint.
package llm

import "context"

// Role identifies the sender of a message in a chat transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the transcript sent to the model. Messages
// are immutable once appended; transcript order determines the prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider is a minimal interface for making chat-completion calls.
// Complete must send the transcript in the order given and must not mutate
// it; only the caller appends the returned reply.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
