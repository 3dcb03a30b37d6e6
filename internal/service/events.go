package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/petalcare/chatd/internal/domain"
)

// recordEvent appends one structured event for a user's exchange. Recording
// failures are logged, never surfaced: observability must not fail requests.
func (s *Service) recordEvent(ctx context.Context, userID string, eventType domain.EventType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("WARN: failed to encode %s payload: %v", eventType, err)
		return
	}

	event := &domain.Event{
		EventID: "evt_" + uuid.New().String()[:8],
		UserID:  userID,
		Ts:      time.Now().UnixMilli(),
		Type:    eventType,
		Payload: data,
	}
	if err := s.store.CreateEvent(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("WARN: failed to record %s event: %v", eventType, err)
	}
}

// Events returns a user's recorded events after the given timestamp.
func (s *Service) Events(ctx context.Context, userID string, afterTs int64, limit int) ([]domain.Event, error) {
	events, err := s.store.GetEvents(ctx, userID, afterTs, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get events: %v", domain.ErrStoreUnavailable, err)
	}
	return events, nil
}
