package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_GetTurns_UnknownSession(t *testing.T) {
	store := newTestStore(t)

	turns, err := store.GetTurns(context.Background(), "never-seen", 20)
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "s1", domain.RoleUser, "hi"))
	require.NoError(t, store.SaveTurn(ctx, "s1", domain.RoleAssistant, "hello"))

	turns, err := store.GetTurns(ctx, "s1", 20)
	require.NoError(t, err)
	assert.Equal(t, []domain.Turn{
		{Role: domain.RoleUser, Text: "hi"},
		{Role: domain.RoleAssistant, Text: "hello"},
	}, turns)
}

func TestStore_WindowBounding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		require.NoError(t, store.SaveTurn(ctx, "s1", domain.RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	turns, err := store.GetTurns(ctx, "s1", 20)
	require.NoError(t, err)
	require.Len(t, turns, 20)

	// most recent 20, oldest-first
	assert.Equal(t, "msg-10", turns[0].Text)
	assert.Equal(t, "msg-29", turns[19].Text)

	// the full history is still stored
	all, err := store.GetTurns(ctx, "s1", 100)
	require.NoError(t, err)
	assert.Len(t, all, 30)
}

func TestStore_DefaultWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, store.SaveTurn(ctx, "s1", domain.RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	turns, err := store.GetTurns(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Len(t, turns, DefaultWindow)
}

func TestStore_SessionIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTurn(ctx, "s1", domain.RoleUser, "one"))
	require.NoError(t, store.SaveTurn(ctx, "s2", domain.RoleUser, "two"))

	turns, err := store.GetTurns(ctx, "s1", 20)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "one", turns[0].Text)
}

func TestStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.SaveTurn(ctx, "shared", domain.RoleUser, fmt.Sprintf("msg-%d", i)))
		}(i)
	}
	wg.Wait()

	turns, err := store.GetTurns(ctx, "shared", writers)
	require.NoError(t, err)
	assert.Len(t, turns, writers)
}
