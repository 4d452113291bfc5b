package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/pages"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

// fail logs err under event and turns it into the HTTP error the browser
// shell understands.
func fail(l *slog.Logger, event string, err error) error {
	var (
		verrs  validate.Errors
		apiErr *apiclient.APIError
	)
	switch {
	case errors.As(err, &verrs):
		l.Warn(event, "status", http.StatusUnprocessableEntity, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{
			"message": "validation failed",
			"errors":  verrs,
		})

	case pages.NeedsSignIn(err):
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "sign in required", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, pages.Redirect{To: pages.SignInPath})

	case errors.Is(err, hooks.ErrQuantityOutOfRange), errors.Is(err, pages.ErrOutOfStock):
		l.Warn(event, "status", http.StatusUnprocessableEntity, "reason", "quantity", "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, hooks.ErrItemNotInCart), errors.Is(err, hooks.ErrNoCart):
		l.Warn(event, "status", http.StatusNotFound, "reason", "cart", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		if apiErr.StatusCode >= 500 {
			l.Error(event, "status", apiErr.StatusCode, "reason", "backend", "error", err)
		} else {
			l.Warn(event, "status", apiErr.StatusCode, "reason", "backend", "error", err)
		}
		return echo.NewHTTPError(apiErr.StatusCode, msg)

	case errors.Is(err, context.Canceled):
		l.Info(event, "status", "cancelled")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
	}

	l.Error(event, "status", http.StatusBadGateway, "reason", "backend unavailable", "error", err)
	return echo.NewHTTPError(http.StatusBadGateway, "backend unavailable")
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}
