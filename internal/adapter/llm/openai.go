package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/petalcare/chatd/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements CompletionClient against the OpenAI API: chat
// completions for the stateless mode and assistants threads/runs for the
// stateful mode.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	assistantID string
}

// NewOpenAIClient creates a new OpenAI-backed client. baseURL may be empty
// to use the default endpoint; assistantID is only required for thread mode.
func NewOpenAIClient(apiKey, baseURL, model, assistantID string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		assistantID: assistantID,
	}
}

// Ensure OpenAIClient implements CompletionClient.
var _ CompletionClient = (*OpenAIClient)(nil)

func (c *OpenAIClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return thread.ID, nil
}

func (c *OpenAIClient) PostMessage(ctx context.Context, threadID string, role domain.Role, content string) (string, error) {
	msg, err := c.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(role),
		Content: content,
	})
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}
	return msg.ID, nil
}

func (c *OpenAIClient) StartRun(ctx context.Context, threadID string) (string, error) {
	run, err := c.client.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: c.assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return run.ID, nil
}

func (c *OpenAIClient) GetRun(ctx context.Context, threadID, runID string) (domain.RunStatus, error) {
	run, err := c.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve run: %w", err)
	}
	return domain.RunStatus(run.Status), nil
}

func (c *OpenAIClient) ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error) {
	order := "asc"
	list, err := c.client.ListMessage(ctx, threadID, nil, &order, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]ThreadMessage, 0, len(list.Messages))
	for _, msg := range list.Messages {
		messages = append(messages, ThreadMessage{
			Role:      msg.Role,
			Content:   textContent(msg),
			CreatedAt: int64(msg.CreatedAt),
		})
	}
	return messages, nil
}

func (c *OpenAIClient) ChatComplete(ctx context.Context, turns []domain.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func textContent(msg openai.Message) string {
	for _, part := range msg.Content {
		if part.Text != nil {
			return part.Text.Value
		}
	}
	return ""
}
