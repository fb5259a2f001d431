package handler

import (
	"errors"
	"marketplace-settlement/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

// jsonError maps service sentinel errors to the HTTP codes of the API
// contract. Unknown errors become an opaque 500; internals never leak to
// callers.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrRuleNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrAuthRequired):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotOrderOwner):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotPending):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNoPaymentSession), errors.Is(err, service.ErrInvalidRule):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
