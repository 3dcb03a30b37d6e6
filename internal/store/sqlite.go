package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/petalcare/chatd/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			user_id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			thread_id TEXT,
			history TEXT,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			ts INTEGER NOT NULL,
			type TEXT NOT NULL,
			payload TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id, ts)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetConversation retrieves the conversation state for a user.
func (s *SQLiteStore) GetConversation(ctx context.Context, userID string) (*domain.ConversationState, error) {
	var state domain.ConversationState
	var threadID, history sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, mode, thread_id, history, updated_at FROM conversations WHERE user_id = ?`,
		userID).Scan(&state.UserID, &state.Mode, &threadID, &history, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if threadID.Valid {
		state.ThreadID = threadID.String
	}
	if history.Valid && history.String != "" {
		if err := json.Unmarshal([]byte(history.String), &state.History); err != nil {
			return nil, fmt.Errorf("failed to decode history for %s: %w", userID, err)
		}
	}
	return &state, nil
}

// PutConversation replaces the full conversation state for a user in one
// statement, so a crash never leaves a partially written record.
func (s *SQLiteStore) PutConversation(ctx context.Context, state *domain.ConversationState) error {
	var history interface{}
	if state.Mode == domain.ModeChat {
		encoded, err := json.Marshal(state.History)
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		history = string(encoded)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, mode, thread_id, history, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			mode = excluded.mode,
			thread_id = excluded.thread_id,
			history = excluded.history,
			updated_at = excluded.updated_at`,
		state.UserID, state.Mode, state.ThreadID, history, state.UpdatedAt)
	return err
}

// CreateEvent appends a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, user_id, ts, type, payload) VALUES (?, ?, ?, ?, ?)`,
		event.EventID, event.UserID, event.Ts, event.Type, string(event.Payload))
	return err
}

// GetEvents retrieves a user's events after the given timestamp, oldest first.
func (s *SQLiteStore) GetEvents(ctx context.Context, userID string, afterTs int64, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, user_id, ts, type, payload FROM events
		 WHERE user_id = ? AND ts > ? ORDER BY ts ASC LIMIT ?`,
		userID, afterTs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var event domain.Event
		var payload sql.NullString
		if err := rows.Scan(&event.EventID, &event.UserID, &event.Ts, &event.Type, &payload); err != nil {
			return nil, err
		}
		if payload.Valid && payload.String != "" {
			event.Payload = json.RawMessage(payload.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
