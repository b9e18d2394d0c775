package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rabbitlabs/niftybot/internal/api/response"
	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/rabbitlabs/niftybot/internal/security"
	"github.com/rabbitlabs/niftybot/internal/service"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// apology is returned in-band when the completion call fails; the
// conversation is not broken with an HTTP error, and the session id is
// echoed back so the caller can retry on the same session.
const apology = "Sorry, I encountered an error. Please try again!"

// ChatRequest is the POST /chat body
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

// ChatResponse is the POST /chat reply
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatHandler handles the chat endpoint
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat validates the request, resolves the session identity and runs one
// chat exchange. Validation failures reject before any side effect.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		log.Warn().Msg("Empty message received")
		response.BadRequest(w, "message is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := security.NewSessionID()
		if err != nil {
			response.InternalError(w, "internal server error")
			return
		}
		sessionID = id
		log.Info().
			Str("session", security.SessionFingerprint(sessionID)).
			Msg("New session created")
	} else {
		// no existence check: an unknown token reads as empty history
		log.Info().
			Str("session", security.SessionFingerprint(sessionID)).
			Msg("Continuing session")
	}

	reply, err := h.chatService.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		h.writeError(w, sessionID, err)
		return
	}

	response.OK(w, ChatResponse{Response: reply, SessionID: sessionID})
}

// writeError maps service errors to the wire. Completion failures are
// absorbed into the fixed apology with a 200; everything else becomes a
// generic 500. Only the error category and session fingerprint are
// logged, never message text or internal detail.
func (h *ChatHandler) writeError(w http.ResponseWriter, sessionID string, err error) {
	fingerprint := security.SessionFingerprint(sessionID)

	var completionErr *domain.CompletionError
	if errors.As(err, &completionErr) {
		log.Error().
			Str("session", fingerprint).
			Str("category", "completion").
			Msg("Chat failed, returning fallback response")
		response.OK(w, ChatResponse{Response: apology, SessionID: sessionID})
		return
	}

	category := "unexpected"
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		category = "storage"
	}

	log.Error().
		Str("session", fingerprint).
		Str("category", category).
		Msg("Chat request failed")
	response.InternalError(w, "internal server error")
}
