package domain

import "encoding/json"

// Event is one structured observability record for a user's exchange.
type Event struct {
	EventID string          `json:"event_id"`
	UserID  string          `json:"user_id"`
	Ts      int64           `json:"ts"` // Unix milliseconds
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ExchangeStartedPayload is the payload for exchange_started.
type ExchangeStartedPayload struct {
	RequestID     string `json:"request_id"`
	Mode          Mode   `json:"mode"`
	QuestionChars int    `json:"question_chars"`
}

// UserTurnSavedPayload is the payload for user_turn_saved.
type UserTurnSavedPayload struct {
	RequestID string `json:"request_id"`
	MessageID string `json:"message_id,omitempty"`
	Content   string `json:"content"`
}

// CompletionStartedPayload is the payload for completion_started.
type CompletionStartedPayload struct {
	RequestID string `json:"request_id"`
	Mode      Mode   `json:"mode"`
	RunID     string `json:"run_id,omitempty"`
}

// CompletionDonePayload is the payload for completion_done.
type CompletionDonePayload struct {
	RequestID  string `json:"request_id"`
	LatencyMs  int64  `json:"latency_ms"`
	ReplyChars int    `json:"reply_chars"`
}

// CompletionFailedPayload is the payload for completion_failed and
// completion_timeout.
type CompletionFailedPayload struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}
