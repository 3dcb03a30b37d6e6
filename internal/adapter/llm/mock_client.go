package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/petalcare/chatd/internal/domain"
)

// MockClient is an in-memory implementation of CompletionClient for tests
// and local development. Replies are deterministic functions of the last
// user message; runs complete immediately.
type MockClient struct {
	mu      sync.Mutex
	threads map[string][]ThreadMessage
	clock   int64
}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{threads: make(map[string][]ThreadMessage)}
}

// Ensure MockClient implements CompletionClient.
var _ CompletionClient = (*MockClient)(nil)

func (m *MockClient) CreateThread(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	threadID := "thread_" + uuid.New().String()[:8]
	m.threads[threadID] = []ThreadMessage{}
	return threadID, nil
}

func (m *MockClient) PostMessage(ctx context.Context, threadID string, role domain.Role, content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.threads[threadID]; !ok {
		return "", fmt.Errorf("thread %s not found", threadID)
	}
	m.clock++
	m.threads[threadID] = append(m.threads[threadID], ThreadMessage{
		Role:      string(role),
		Content:   content,
		CreatedAt: m.clock,
	})
	return "msg_" + uuid.New().String()[:8], nil
}

// StartRun synthesizes the assistant reply immediately; the subsequent
// GetRun always observes a completed run.
func (m *MockClient) StartRun(ctx context.Context, threadID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages, ok := m.threads[threadID]
	if !ok {
		return "", fmt.Errorf("thread %s not found", threadID)
	}

	lastUser := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == string(domain.RoleUser) {
			lastUser = messages[i].Content
			break
		}
	}
	m.clock++
	m.threads[threadID] = append(messages, ThreadMessage{
		Role:      string(domain.RoleAssistant),
		Content:   mockReply(lastUser),
		CreatedAt: m.clock,
	})
	return "run_" + uuid.New().String()[:8], nil
}

func (m *MockClient) GetRun(ctx context.Context, threadID, runID string) (domain.RunStatus, error) {
	return domain.RunStatusCompleted, nil
}

// ListMessages returns newest first, exercising the consumer's reordering.
func (m *MockClient) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages, ok := m.threads[threadID]
	if !ok {
		return nil, fmt.Errorf("thread %s not found", threadID)
	}
	reversed := make([]ThreadMessage, len(messages))
	for i, msg := range messages {
		reversed[len(messages)-1-i] = msg
	}
	return reversed, nil
}

func (m *MockClient) ChatComplete(ctx context.Context, turns []domain.Turn) (string, error) {
	lastUser := ""
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.RoleUser {
			lastUser = turns[i].Content
			break
		}
	}
	return mockReply(lastUser), nil
}

func mockReply(question string) string {
	question = strings.TrimSpace(question)
	if len(question) > 64 {
		question = question[:64]
	}
	return "Mock answer to: " + question
}
