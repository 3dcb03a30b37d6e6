package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petalcare/chatd/internal/domain"
)

// Ask handles a user question and returns the reply with the full history.
// POST /ask
func (h *Handler) Ask(c echo.Context) error {
	var req domain.AskRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
	}

	resp, err := h.service.Respond(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
