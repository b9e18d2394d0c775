package llm

import "github.com/rabbitlabs/niftybot/internal/domain"

// ToHistory converts stored turns into provider messages, preserving
// order. The local "assistant" role maps to the provider's "model" role.
// Turns with any other role are dropped.
func ToHistory(turns []domain.Turn) []Message {
	history := make([]Message, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case domain.RoleUser:
			history = append(history, Message{Role: RoleUser, Content: t.Text})
		case domain.RoleAssistant:
			history = append(history, Message{Role: RoleModel, Content: t.Text})
		}
	}
	return history
}
