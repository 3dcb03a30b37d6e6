// Package v1 provides HTTP handlers for chatd.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petalcare/chatd/internal/domain"
	"github.com/petalcare/chatd/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ask", h.Ask)

	e.GET("/v1/users/:user_id/history", h.GetUserHistory)
	e.GET("/v1/users/:user_id/events", h.GetUserEvents)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorJSON maps a service error to an HTTP status and error payload.
func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_input"
	case errors.Is(err, domain.ErrPolicyBlocked):
		status = http.StatusForbidden
		code = "policy_blocked"
	case errors.Is(err, domain.ErrRunTimeout):
		status = http.StatusGatewayTimeout
		code = "timeout"
	case errors.Is(err, domain.ErrCompletionFailed):
		status = http.StatusBadGateway
		code = "completion_failed"
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusInternalServerError
		code = "store_unavailable"
	}

	return c.JSON(status, domain.ErrorResponse{Message: err.Error(), Code: code})
}
