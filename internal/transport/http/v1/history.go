package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetUserHistory retrieves the full conversation history for a user.
// GET /v1/users/:user_id/history
func (h *Handler) GetUserHistory(c echo.Context) error {
	userID := c.Param("user_id")

	history, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": history,
	})
}

// maxEventsLimit caps the events page size a caller may request.
const maxEventsLimit = 500

// GetUserEvents retrieves recorded events for a user.
// GET /v1/users/:user_id/events
func (h *Handler) GetUserEvents(c echo.Context) error {
	userID := c.Param("user_id")
	limit := 100
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	if limit <= 0 {
		limit = 100
	} else if limit > maxEventsLimit {
		limit = maxEventsLimit
	}
	afterTs := int64(0)
	if t := c.QueryParam("after_ts"); t != "" {
		if val, err := strconv.ParseInt(t, 10, 64); err == nil {
			afterTs = val
		}
	}

	events, err := h.service.Events(c.Request().Context(), userID, afterTs, limit)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}
