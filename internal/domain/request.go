package domain

// AskRequest is the inbound question payload.
type AskRequest struct {
	UserID   string       `json:"userId"`
	Question string       `json:"question"`
	Context  *UserContext `json:"userContext,omitempty"`
}

// AskResponse is the success payload: the assistant's reply plus the full
// chronological history for the user.
type AskResponse struct {
	Reply   string `json:"reply"`
	History []Turn `json:"history"`
}

// ErrorResponse is the error payload. Code distinguishes the failure
// category so callers can decide whether a retry makes sense.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
