package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/draft"
	"github.com/moritzgrimm/gigbook/internal/repository"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

// writeError maps the error taxonomy onto HTTP responses. Transport
// failures are 502 and retryable: the client keeps its in-progress draft
// and may simply try again. Not-found is 404 and retrying will not help.
// Validation problems are 422 with the field problems spelled out.
func writeError(c echo.Context, err error) error {
	var ve *draft.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":    "draft invalid",
			"problems": ve.Problems,
		})
	}
	if sheet.IsTransport(err) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "store unreachable, retry"})
	}
	switch {
	case errors.Is(err, repository.ErrRepertoireNotFound),
		errors.Is(err, repository.ErrLocationNotFound),
		errors.Is(err, repository.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
