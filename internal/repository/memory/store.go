// Package memory provides an in-memory domain.TurnStore, used as a
// drop-in substitute for the SQLite store in tests.
package memory

import (
	"context"
	"sync"

	"github.com/rabbitlabs/niftybot/internal/domain"
)

// Store implements domain.TurnStore on a plain map
type Store struct {
	mu       sync.Mutex
	sessions map[string][]domain.Turn
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{sessions: make(map[string][]domain.Turn)}
}

// GetTurns returns the most recent limit turns for a session, oldest-first
func (s *Store) GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[sessionID]
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	// callers get a copy, never the backing slice
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// SaveTurn appends one turn to a session's history
func (s *Store) SaveTurn(ctx context.Context, sessionID string, role domain.Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], domain.Turn{Role: role, Text: text})
	return nil
}
