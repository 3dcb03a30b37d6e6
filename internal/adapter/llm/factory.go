package llm

import (
	"log"
	"os"
)

const (
	// EnvChatdMode is the environment variable name for mode selection.
	EnvChatdMode = "CHATD_MODE"
	// ModeMock indicates the mock client should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the CHATD_MODE
// environment variable. If CHATD_MODE=MOCK, returns a MockClient; otherwise
// returns an OpenAI-backed client.
func NewCompletionClient(apiKey, baseURL, model, assistantID string) CompletionClient {
	if os.Getenv(EnvChatdMode) == ModeMock {
		log.Println("CHATD_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}
	return NewOpenAIClient(apiKey, baseURL, model, assistantID)
}
