package domain

import "errors"

// Error kinds surfaced by the session manager. Callers match them with
// errors.Is; wrapped causes stay available through errors.Unwrap.
var (
	// ErrInvalidInput marks a caller error (missing userId or question, or a
	// request against a conversation stored in a different mode). Never
	// retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable marks a persistence failure. No partial state is
	// assumed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrCompletionFailed marks a remote completion failure. The user's turn
	// stays persisted; no assistant turn is recorded.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrRunTimeout marks a run that did not reach a terminal status within
	// the configured polling bound. Distinct from ErrCompletionFailed so
	// callers can retry only the completion step.
	ErrRunTimeout = errors.New("completion timed out")

	// ErrPolicyBlocked marks a request rejected by the admission policy.
	ErrPolicyBlocked = errors.New("blocked by policy")
)
