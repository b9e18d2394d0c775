package domain

import "context"

// Role represents the speaker of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn represents one message in a session's conversation history.
// Turns are immutable once created and ordered by creation time.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// TurnStore defines the interface for session history storage
type TurnStore interface {
	// GetTurns returns the most recent limit turns for a session,
	// oldest-first. An unknown session yields an empty slice, not an error.
	GetTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)

	// SaveTurn appends one turn to a session's history, creating the
	// session on first write.
	SaveTurn(ctx context.Context, sessionID string, role Role, text string) error
}
