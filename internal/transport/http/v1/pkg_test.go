package v1

import (
	"testing"
	"time"

	"github.com/petalcare/chatd/internal/adapter/llm"
	"github.com/petalcare/chatd/internal/config"
	"github.com/petalcare/chatd/internal/domain"
	"github.com/petalcare/chatd/internal/service"
	"github.com/petalcare/chatd/internal/store"
)

func newTestHandler(t *testing.T, client llm.CompletionClient, mode domain.Mode) (*Handler, store.Store) {
	t.Helper()
	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		CompletionMode:    mode,
		CompletionTimeout: time.Second,
		RunPollInterval:   time.Millisecond,
		RunPollTimeout:    25 * time.Millisecond,
	}
	return NewHandler(service.New(db, client, nil, cfg)), db
}
