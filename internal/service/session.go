package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petalcare/chatd/internal/adapter/llm"
	"github.com/petalcare/chatd/internal/domain"
	"github.com/petalcare/chatd/internal/format"
)

// Respond handles one question: it resolves or creates the user's
// conversation, appends the user turn, obtains the assistant's reply and
// returns it with the full chronological history. The user's turn is
// persisted even when the completion step fails, so no conversational
// context is lost.
func (s *Service) Respond(ctx context.Context, req domain.AskRequest) (*domain.AskResponse, error) {
	userID := strings.TrimSpace(req.UserID)
	question := strings.TrimSpace(req.Question)
	if userID == "" || question == "" {
		return nil, fmt.Errorf("%w: userId and question are required", domain.ErrInvalidInput)
	}

	if s.policy != nil {
		decision, err := s.policy.Evaluate(ctx, map[string]interface{}{
			"user_id":  userID,
			"question": question,
		})
		if err != nil {
			log.Printf("WARN: policy evaluation failed, allowing request: %v", err)
		} else if decision == "block" {
			return nil, fmt.Errorf("%w: question rejected", domain.ErrPolicyBlocked)
		}
	}

	requestID := "req_" + uuid.New().String()[:8]
	body := format.Body(req.Context, question)

	// Serialize the whole read-modify-write per user.
	unlock := s.locks.lock(userID)
	defer unlock()

	state, err := s.store.GetConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load conversation: %v", domain.ErrStoreUnavailable, err)
	}
	// A caller error must leave no trace, in the event log included, so the
	// mode check precedes the first recordEvent.
	if state != nil && state.Mode != s.config.CompletionMode {
		return nil, fmt.Errorf("%w: conversation for %s uses mode %s", domain.ErrInvalidInput, userID, state.Mode)
	}

	s.recordEvent(ctx, userID, domain.EventTypeExchangeStarted, domain.ExchangeStartedPayload{
		RequestID:     requestID,
		Mode:          s.config.CompletionMode,
		QuestionChars: len(question),
	})

	if s.config.CompletionMode == domain.ModeThread {
		return s.respondThread(ctx, requestID, userID, body, state)
	}
	return s.respondChat(ctx, requestID, userID, body, state)
}

// respondChat replays the full locally stored history through one stateless
// completion call.
func (s *Service) respondChat(ctx context.Context, requestID, userID, body string, state *domain.ConversationState) (*domain.AskResponse, error) {
	if state == nil {
		state = &domain.ConversationState{UserID: userID, Mode: domain.ModeChat}
	}

	state.History = append(state.History, domain.Turn{Role: domain.RoleUser, Content: body})
	s.recordEvent(ctx, userID, domain.EventTypeUserTurnSaved, domain.UserTurnSavedPayload{
		RequestID: requestID,
		Content:   body,
	})

	s.recordEvent(ctx, userID, domain.EventTypeCompletionStarted, domain.CompletionStartedPayload{
		RequestID: requestID,
		Mode:      domain.ModeChat,
	})
	started := time.Now()

	cctx, cancel := context.WithTimeout(ctx, s.config.CompletionTimeout)
	defer cancel()
	reply, err := s.llm.ChatComplete(cctx, state.History)
	if err != nil {
		// Keep the user's turn even though no assistant turn was produced.
		if putErr := s.persist(ctx, state); putErr != nil {
			log.Printf("ERROR: failed to persist conversation for %s: %v", userID, putErr)
		}
		s.recordEvent(ctx, userID, domain.EventTypeCompletionFailed, domain.CompletionFailedPayload{
			RequestID: requestID,
			Code:      "chat_completion_failed",
			Message:   err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}

	state.History = append(state.History, domain.Turn{Role: domain.RoleAssistant, Content: reply})
	if err := s.persist(ctx, state); err != nil {
		return nil, fmt.Errorf("%w: failed to persist conversation: %v", domain.ErrStoreUnavailable, err)
	}

	s.recordEvent(ctx, userID, domain.EventTypeCompletionDone, domain.CompletionDonePayload{
		RequestID:  requestID,
		LatencyMs:  time.Since(started).Milliseconds(),
		ReplyChars: len(reply),
	})

	history := make([]domain.Turn, len(state.History))
	copy(history, state.History)
	return &domain.AskResponse{Reply: reply, History: history}, nil
}

// respondThread posts the turn to the user's remote thread and drives a run
// against it, polling until a terminal status within the configured bound.
func (s *Service) respondThread(ctx context.Context, requestID, userID, body string, state *domain.ConversationState) (*domain.AskResponse, error) {
	if state == nil {
		threadID, err := s.llm.CreateThread(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create thread: %v", domain.ErrCompletionFailed, err)
		}
		state = &domain.ConversationState{UserID: userID, Mode: domain.ModeThread, ThreadID: threadID}
		// Persist the handle immediately so creation is not retried when a
		// later step fails.
		if err := s.persist(ctx, state); err != nil {
			return nil, fmt.Errorf("%w: failed to persist thread handle: %v", domain.ErrStoreUnavailable, err)
		}
	}

	msgID, err := s.llm.PostMessage(ctx, state.ThreadID, domain.RoleUser, body)
	if err != nil {
		s.recordEvent(ctx, userID, domain.EventTypeCompletionFailed, domain.CompletionFailedPayload{
			RequestID: requestID,
			Code:      "post_message_failed",
			Message:   err.Error(),
		})
		return nil, fmt.Errorf("%w: post message: %v", domain.ErrCompletionFailed, err)
	}
	s.recordEvent(ctx, userID, domain.EventTypeUserTurnSaved, domain.UserTurnSavedPayload{
		RequestID: requestID,
		MessageID: msgID,
		Content:   body,
	})

	started := time.Now()
	runID, err := s.llm.StartRun(ctx, state.ThreadID)
	if err != nil {
		return nil, s.threadFailure(ctx, requestID, userID, state, "start_run_failed", err)
	}
	s.recordEvent(ctx, userID, domain.EventTypeCompletionStarted, domain.CompletionStartedPayload{
		RequestID: requestID,
		Mode:      domain.ModeThread,
		RunID:     runID,
	})

	status, err := s.awaitRun(ctx, state.ThreadID, runID)
	if err != nil {
		if errors.Is(err, domain.ErrRunTimeout) {
			if putErr := s.persist(ctx, state); putErr != nil {
				log.Printf("ERROR: failed to persist conversation for %s: %v", userID, putErr)
			}
			s.recordEvent(ctx, userID, domain.EventTypeCompletionTimeout, domain.CompletionFailedPayload{
				RequestID: requestID,
				Code:      "run_timeout",
				Message:   err.Error(),
			})
			return nil, err
		}
		return nil, s.threadFailure(ctx, requestID, userID, state, "poll_failed", err)
	}
	if status != domain.RunStatusCompleted {
		return nil, s.threadFailure(ctx, requestID, userID, state, "run_"+string(status),
			fmt.Errorf("run %s ended with status %s", runID, status))
	}

	messages, err := s.llm.ListMessages(ctx, state.ThreadID)
	if err != nil {
		return nil, s.threadFailure(ctx, requestID, userID, state, "list_messages_failed", err)
	}
	history := chronological(messages)

	reply := lastAssistant(history)
	if reply == "" {
		return nil, s.threadFailure(ctx, requestID, userID, state, "empty_reply",
			fmt.Errorf("run %s completed without an assistant message", runID))
	}

	if err := s.persist(ctx, state); err != nil {
		return nil, fmt.Errorf("%w: failed to persist conversation: %v", domain.ErrStoreUnavailable, err)
	}
	s.recordEvent(ctx, userID, domain.EventTypeCompletionDone, domain.CompletionDonePayload{
		RequestID:  requestID,
		LatencyMs:  time.Since(started).Milliseconds(),
		ReplyChars: len(reply),
	})

	return &domain.AskResponse{Reply: reply, History: history}, nil
}

// threadFailure persists the state (the user's turn already lives in the
// remote thread), records the failure and returns a CompletionFailed error.
func (s *Service) threadFailure(ctx context.Context, requestID, userID string, state *domain.ConversationState, code string, cause error) error {
	if err := s.persist(ctx, state); err != nil {
		log.Printf("ERROR: failed to persist conversation for %s: %v", userID, err)
	}
	s.recordEvent(ctx, userID, domain.EventTypeCompletionFailed, domain.CompletionFailedPayload{
		RequestID: requestID,
		Code:      code,
		Message:   cause.Error(),
	})
	return fmt.Errorf("%w: %v", domain.ErrCompletionFailed, cause)
}

// awaitRun polls the run status at a fixed interval until a terminal status,
// failing with ErrRunTimeout once the configured bound is exceeded or the
// request deadline is hit.
func (s *Service) awaitRun(ctx context.Context, threadID, runID string) (domain.RunStatus, error) {
	deadline := time.Now().Add(s.config.RunPollTimeout)
	ticker := time.NewTicker(s.config.RunPollInterval)
	defer ticker.Stop()

	for {
		status, err := s.llm.GetRun(ctx, threadID, runID)
		if err != nil {
			return "", err
		}
		if status.Terminal() {
			return status, nil
		}
		if !time.Now().Before(deadline) {
			return status, fmt.Errorf("%w: run %s still %s after %s", domain.ErrRunTimeout, runID, status, s.config.RunPollTimeout)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return status, fmt.Errorf("%w: %v", domain.ErrRunTimeout, ctx.Err())
			}
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}

// History returns the full chronological history for a user; empty for
// unknown users.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	state, err := s.store.GetConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load conversation: %v", domain.ErrStoreUnavailable, err)
	}
	if state == nil {
		return []domain.Turn{}, nil
	}

	if state.Mode == domain.ModeThread {
		messages, err := s.llm.ListMessages(ctx, state.ThreadID)
		if err != nil {
			return nil, fmt.Errorf("%w: list messages: %v", domain.ErrCompletionFailed, err)
		}
		return chronological(messages), nil
	}

	history := make([]domain.Turn, len(state.History))
	copy(history, state.History)
	return history, nil
}

// persist writes the state with a context detached from request
// cancellation, so an aborted request cannot drop an appended turn.
func (s *Service) persist(ctx context.Context, state *domain.ConversationState) error {
	state.UpdatedAt = time.Now()
	return s.store.PutConversation(context.WithoutCancel(ctx), state)
}

// chronological normalizes a remote message listing to oldest-first user and
// assistant turns, whichever order the remote returned. Ties on CreatedAt
// (the remote stamps whole seconds) keep the listing's own order, so the
// OpenAI adapter requests ascending listings.
func chronological(messages []llm.ThreadMessage) []domain.Turn {
	sorted := make([]llm.ThreadMessage, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt < sorted[j].CreatedAt })

	turns := make([]domain.Turn, 0, len(sorted))
	for _, msg := range sorted {
		role := domain.Role(msg.Role)
		if role != domain.RoleUser && role != domain.RoleAssistant {
			continue
		}
		turns = append(turns, domain.Turn{Role: role, Content: msg.Content})
	}
	return turns
}

func lastAssistant(turns []domain.Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.RoleAssistant {
			return turns[i].Content
		}
	}
	return ""
}
