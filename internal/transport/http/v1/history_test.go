package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/petalcare/chatd/internal/adapter/llm"
	"github.com/petalcare/chatd/internal/domain"
)

func getUserPath(t *testing.T, handlerFunc func(echo.Context) error, path, userID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(userID)

	if err := handlerFunc(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGetUserHistory(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockClient(), domain.ModeChat)

	postAsk(t, h, `{"userId":"u1","question":"Hello"}`)
	postAsk(t, h, `{"userId":"u1","question":"Follow-up"}`)

	rec := getUserPath(t, h.GetUserHistory, "/v1/users/u1/history", "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		History []domain.Turn `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.History) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(resp.History))
	}
}

func TestGetUserHistoryUnknownUser(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockClient(), domain.ModeChat)

	rec := getUserPath(t, h.GetUserHistory, "/v1/users/ghost/history", "ghost")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		History []domain.Turn `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.History) != 0 {
		t.Fatalf("expected empty history, got %+v", resp.History)
	}
}

func TestGetUserEvents(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockClient(), domain.ModeChat)

	postAsk(t, h, `{"userId":"u1","question":"Hello"}`)

	rec := getUserPath(t, h.GetUserEvents, "/v1/users/u1/events", "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Events []domain.Event `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Events) == 0 {
		t.Fatal("expected recorded events")
	}
	var sawStart bool
	for _, event := range resp.Events {
		if event.Type == domain.EventTypeExchangeStarted {
			sawStart = true
		}
	}
	if !sawStart {
		t.Fatal("expected an exchange_started event")
	}
}

func TestGetUserEventsLimitCapped(t *testing.T) {
	h, _ := newTestHandler(t, llm.NewMockClient(), domain.ModeChat)

	postAsk(t, h, `{"userId":"u1","question":"Hello"}`)

	// Out-of-range limits are clamped, not passed through.
	for _, path := range []string{
		"/v1/users/u1/events?limit=100000",
		"/v1/users/u1/events?limit=-5",
	} {
		rec := getUserPath(t, h.GetUserEvents, path, "u1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}

		var resp struct {
			Events []domain.Event `json:"events"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Events) == 0 {
			t.Fatalf("expected events for %s", path)
		}
	}
}
