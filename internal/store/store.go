package store

import (
	"context"

	"github.com/petalcare/chatd/internal/domain"
)

// Store is the durable thread store: one whole-value conversation record per
// user, plus the append-only event log. Absence of a conversation is not an
// error; it signals a new user.
type Store interface {
	// GetConversation returns the state for a user, or nil when absent.
	GetConversation(ctx context.Context, userID string) (*domain.ConversationState, error)

	// PutConversation atomically replaces the full state for a user.
	// Concurrent puts for the same user are last-write-wins; serialization
	// happens in the session manager.
	PutConversation(ctx context.Context, state *domain.ConversationState) error

	// CreateEvent appends one observability event.
	CreateEvent(ctx context.Context, event *domain.Event) error

	// GetEvents returns a user's events with ts > afterTs, oldest first.
	GetEvents(ctx context.Context, userID string, afterTs int64, limit int) ([]domain.Event, error)

	Close() error
}
