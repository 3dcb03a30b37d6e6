// Package domain defines the core domain models for chatd.
package domain

import "time"

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mode selects how conversation continuity is maintained for a user.
type Mode string

const (
	// ModeChat replays the full locally stored history through a stateless
	// chat completion call.
	ModeChat Mode = "chat"
	// ModeThread delegates history to a remote assistant thread and drives
	// runs against it.
	ModeThread Mode = "thread"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationState is the per-user durable record. Exactly one of ThreadID
// (thread mode) or History (chat mode) carries the conversation; the two
// representations are never mixed for the same user.
type ConversationState struct {
	UserID    string    `json:"user_id"`
	Mode      Mode      `json:"mode"`
	ThreadID  string    `json:"thread_id,omitempty"`
	History   []Turn    `json:"history,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserContext carries optional structured attributes accompanying a
// question. It is folded into the message body by the formatter and never
// persisted separately.
type UserContext struct {
	Weight          *float64 `json:"weight,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	ChildName       string   `json:"childName,omitempty"`
	ParentFirstName string   `json:"parentFirstName,omitempty"`
	CurrentAge      *int     `json:"currentAge,omitempty"`
	Sex             string   `json:"sex,omitempty"`
}
