package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/rabbitlabs/niftybot/internal/llm"
	"github.com/rabbitlabs/niftybot/internal/security"
	"github.com/rs/zerolog/log"
)

// ContextWindow bounds how many recent turns are replayed to the
// completion provider per request. Stored history is not truncated.
const ContextWindow = 20

// ChatService orchestrates one chat exchange: load the session's recent
// history, call the completion provider, persist the new turns. All state
// lives in the injected store; the service itself is stateless.
type ChatService struct {
	store     domain.TurnStore
	completer llm.Completer
}

// NewChatService creates a new chat service
func NewChatService(store domain.TurnStore, completer llm.Completer) *ChatService {
	return &ChatService{
		store:     store,
		completer: completer,
	}
}

// Chat generates a reply to message within the given session. On a
// completion failure nothing is persisted and the error is returned for
// the handler to absorb; the two new turns are written only after a
// successful generation, user turn first.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string) (string, error) {
	requestID := uuid.New().String()
	fingerprint := security.SessionFingerprint(sessionID)

	log.Info().
		Str("request_id", requestID).
		Str("session", fingerprint).
		Msg("Processing chat request")

	turns, err := s.store.GetTurns(ctx, sessionID, ContextWindow)
	if err != nil {
		return "", err
	}

	history := llm.ToHistory(turns)

	log.Info().
		Str("request_id", requestID).
		Str("session", fingerprint).
		Int("context", len(history)).
		Msg("Replaying session context")

	reply, err := s.completer.Complete(ctx, history, message)
	if err != nil {
		return "", err
	}

	if err := s.store.SaveTurn(ctx, sessionID, domain.RoleUser, message); err != nil {
		return "", err
	}
	if err := s.store.SaveTurn(ctx, sessionID, domain.RoleAssistant, reply); err != nil {
		return "", err
	}

	log.Info().
		Str("request_id", requestID).
		Str("session", fingerprint).
		Int("reply_chars", len(reply)).
		Msg("Generated response")

	return reply, nil
}
