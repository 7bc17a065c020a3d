package llm

import (
	"context"

	"fprep/internal/shared"
)

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// ChatResponse contains the generated text and metadata like token usage.
type ChatResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// ChatCompleter generates text from a role-tagged message list at the given
// sampling temperature.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (ChatResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
