package domain

// RunStatus represents the status of a remote run. Values mirror the remote
// service's wire statuses.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
	RunStatusIncomplete     RunStatus = "incomplete"
)

// Terminal reports whether no further status transition can occur.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusIncomplete:
		return true
	}
	return false
}

// EventType represents the type of a recorded event.
type EventType string

const (
	EventTypeExchangeStarted   EventType = "exchange_started"
	EventTypeUserTurnSaved     EventType = "user_turn_saved"
	EventTypeCompletionStarted EventType = "completion_started"
	EventTypeCompletionDone    EventType = "completion_done"
	EventTypeCompletionFailed  EventType = "completion_failed"
	EventTypeCompletionTimeout EventType = "completion_timeout"
)
