package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rabbitlabs/niftybot/internal/config"
	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/rabbitlabs/niftybot/internal/llm"
	"google.golang.org/api/option"
)

// persona is the fixed system instruction every model instance is pinned to
const persona = "You are nifty-bot, a friendly AI agent inspired by the White Rabbit from " +
	"Alice in Wonderland. You adore rabbit-themed NFTs on Ethereum L1 and L2. " +
	"You often worry about the time. Be short, conversational, and rabbit-themed."

// Client implements llm.Completer against the Gemini API
type Client struct {
	apiKey    string
	projectID string
	model     string
}

// NewClient creates a Gemini completion client pinned to the configured model
func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		projectID: cfg.ProjectID,
		model:     cfg.Model,
	}
}

// Complete replays history into a fresh chat session and submits the new
// user message. A single failed attempt surfaces to the caller; there is
// no retry at this layer.
func (c *Client) Complete(ctx context.Context, history []llm.Message, message string) (string, error) {
	opts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.projectID != "" {
		opts = append(opts, option.WithQuotaProject(c.projectID))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", &domain.CompletionError{Err: fmt.Errorf("failed to create gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(persona)},
	}

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		chat.History = append(chat.History, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", &domain.CompletionError{Err: fmt.Errorf("gemini generation error: %w", err)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &domain.CompletionError{Err: fmt.Errorf("empty response from gemini")}
	}

	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply += string(text)
		}
	}

	return reply, nil
}
