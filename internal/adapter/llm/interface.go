// Package llm provides an abstraction for the remote completion service.
package llm

import (
	"context"

	"github.com/petalcare/chatd/internal/domain"
)

// ThreadMessage is one message read back from a remote thread. CreatedAt is
// Unix seconds; the remote may list messages in either direction, so the
// consumer orders by it.
type ThreadMessage struct {
	Role      string
	Content   string
	CreatedAt int64
}

// CompletionClient defines the operations required from the remote
// completion service. Each call is independently failable.
type CompletionClient interface {
	// CreateThread creates a remote conversation thread and returns its handle.
	CreateThread(ctx context.Context) (string, error)

	// PostMessage appends a message to a remote thread and returns the
	// message id.
	PostMessage(ctx context.Context, threadID string, role domain.Role, content string) (string, error)

	// StartRun starts an asynchronous run against a thread and returns the
	// run handle.
	StartRun(ctx context.Context, threadID string) (string, error)

	// GetRun reports the current status of a run.
	GetRun(ctx context.Context, threadID, runID string) (domain.RunStatus, error)

	// ListMessages returns all messages of a thread, in either order.
	ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error)

	// ChatComplete sends the full message sequence in one stateless call and
	// returns the reply text.
	ChatComplete(ctx context.Context, turns []domain.Turn) (string, error)
}
