package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/petalcare/chatd/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStoreAbsentConversation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	state, err := store.GetConversation(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil for unknown user, got %+v", state)
	}
}

func TestSQLiteStoreChatRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	state := &domain.ConversationState{
		UserID: "u1",
		Mode:   domain.ModeChat,
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "hello"},
			{Role: domain.RoleAssistant, Content: "hi"},
		},
		UpdatedAt: time.Now(),
	}
	if err := store.PutConversation(ctx, state); err != nil {
		t.Fatalf("PutConversation failed: %v", err)
	}

	got, err := store.GetConversation(ctx, "u1")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if got == nil || got.Mode != domain.ModeChat {
		t.Fatalf("unexpected state: %+v", got)
	}
	if len(got.History) != 2 || got.History[0].Content != "hello" || got.History[1].Role != domain.RoleAssistant {
		t.Fatalf("unexpected history: %+v", got.History)
	}
}

func TestSQLiteStoreThreadRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	state := &domain.ConversationState{
		UserID:    "u1",
		Mode:      domain.ModeThread,
		ThreadID:  "thread_abc",
		UpdatedAt: time.Now(),
	}
	if err := store.PutConversation(ctx, state); err != nil {
		t.Fatalf("PutConversation failed: %v", err)
	}

	got, err := store.GetConversation(ctx, "u1")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if got == nil || got.ThreadID != "thread_abc" || len(got.History) != 0 {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestSQLiteStorePutReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	first := &domain.ConversationState{
		UserID:    "u1",
		Mode:      domain.ModeChat,
		History:   []domain.Turn{{Role: domain.RoleUser, Content: "one"}},
		UpdatedAt: time.Now(),
	}
	if err := store.PutConversation(ctx, first); err != nil {
		t.Fatalf("PutConversation failed: %v", err)
	}

	second := &domain.ConversationState{
		UserID: "u1",
		Mode:   domain.ModeChat,
		History: []domain.Turn{
			{Role: domain.RoleUser, Content: "one"},
			{Role: domain.RoleAssistant, Content: "two"},
		},
		UpdatedAt: time.Now(),
	}
	if err := store.PutConversation(ctx, second); err != nil {
		t.Fatalf("PutConversation failed: %v", err)
	}

	got, err := store.GetConversation(ctx, "u1")
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(got.History) != 2 {
		t.Fatalf("expected replaced history of 2 turns, got %d", len(got.History))
	}
}

func TestSQLiteStoreEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	for i, eventType := range []domain.EventType{domain.EventTypeExchangeStarted, domain.EventTypeCompletionDone} {
		event := &domain.Event{
			EventID: "e" + string(rune('1'+i)),
			UserID:  "u1",
			Ts:      int64(i + 1),
			Type:    eventType,
			Payload: json.RawMessage(`{"request_id":"req_1"}`),
		}
		if err := store.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	events, err := store.GetEvents(ctx, "u1", 0, 10)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 2 || events[0].Type != domain.EventTypeExchangeStarted {
		t.Fatalf("unexpected events: %+v", events)
	}

	events, err = store.GetEvents(ctx, "u1", 1, 10)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != domain.EventTypeCompletionDone {
		t.Fatalf("expected only the later event, got %+v", events)
	}
}
