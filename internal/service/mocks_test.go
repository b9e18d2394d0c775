package service

import (
	"context"

	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/rabbitlabs/niftybot/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockTurnStore mocks the domain.TurnStore interface
type MockTurnStore struct {
	mock.Mock
}

func (m *MockTurnStore) GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Turn), args.Error(1)
}

func (m *MockTurnStore) SaveTurn(ctx context.Context, sessionID string, role domain.Role, text string) error {
	args := m.Called(ctx, sessionID, role, text)
	return args.Error(0)
}

// MockCompleter mocks llm.Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, history []llm.Message, message string) (string, error) {
	args := m.Called(ctx, history, message)
	return args.String(0), args.Error(1)
}
