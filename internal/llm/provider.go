package llm

import "context"

// Provider message roles. Gemini uses "model" where we store "assistant".
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn in the shape the completion provider expects
type Message struct {
	Role    string
	Content string
}

// Completer defines the interface for the external completion capability.
// A call replays history, submits the new user message and returns the
// generated reply. It is all-or-nothing: no retry, no caching, no
// streaming, and a failure surfaces as *domain.CompletionError.
type Completer interface {
	Complete(ctx context.Context, history []Message, message string) (string, error)
}
