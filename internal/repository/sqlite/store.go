package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rabbitlabs/niftybot/internal/domain"
	"github.com/rabbitlabs/niftybot/internal/security"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DefaultWindow is the number of recent turns returned when the caller
// does not specify a limit.
const DefaultWindow = 20

// Store implements domain.TurnStore on an embedded SQLite table. Each
// session's full history lives in a single row as a JSON array; stored
// history is unbounded, only the returned window is capped. The backing
// file sits on ephemeral storage, so sessions last for the life of the
// process/container only.
type Store struct {
	db *sql.DB

	// per-session locks serialize the read-modify-write in SaveTurn so
	// concurrent appends on one session cannot lose an update
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore opens (or creates) the session database at path
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database file path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			turns      TEXT
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Session database initialized")

	return &Store{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// sessionLock returns the lock for a session, creating it on demand.
// Unrelated sessions are never serialized against each other.
func (s *Store) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// GetTurns returns the most recent limit turns for a session, oldest-first.
// An unknown session yields an empty slice.
func (s *Store) GetTurns(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		limit = DefaultWindow
	}

	turns, err := s.readAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session", security.SessionFingerprint(sessionID)).
		Int("count", len(turns)).
		Msg("Loaded session history")

	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

// SaveTurn appends one turn to a session's history. The full history is
// read back, extended and upserted as a whole; the per-session lock keeps
// concurrent appends from overwriting each other.
func (s *Store) SaveTurn(ctx context.Context, sessionID string, role domain.Role, text string) error {
	l := s.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	turns, err := s.readAll(ctx, sessionID)
	if err != nil {
		return err
	}

	turns = append(turns, domain.Turn{Role: role, Text: text})

	blob, err := json.Marshal(turns)
	if err != nil {
		return &domain.StorageError{Op: "save", Err: fmt.Errorf("failed to encode history: %w", err)}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, turns) VALUES (?, ?)
		ON CONFLICT(session_id) DO UPDATE SET turns = excluded.turns
	`, sessionID, string(blob))
	if err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}

	log.Info().
		Str("session", security.SessionFingerprint(sessionID)).
		Int("count", len(turns)).
		Msg("Saved turn")

	return nil
}

// readAll loads a session's full stored history
func (s *Store) readAll(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	var blob sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT turns FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Turn{}, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}

	if !blob.Valid || blob.String == "" {
		return []domain.Turn{}, nil
	}

	var turns []domain.Turn
	if err := json.Unmarshal([]byte(blob.String), &turns); err != nil {
		return nil, &domain.StorageError{Op: "get", Err: fmt.Errorf("failed to decode history: %w", err)}
	}
	return turns, nil
}
