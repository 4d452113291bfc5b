// Package middleware holds the echo middleware of the storefront server.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
)

// AccessToken returns the current session's access token, empty when signed out.
type AccessToken func(ctx context.Context) (string, error)

// RequestLogger puts a request-scoped logger into the request context and
// logs one line per request. When token is set, the signed-in username is
// read from the unverified session claims and logged as well.
func RequestLogger(base *slog.Logger, token AccessToken) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}
			if user := sessionUser(req.Context(), token); user != "" {
				l = l.With("user", user)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			dur := time.Since(start).Milliseconds()

			switch {
			case status >= 500:
				l.Error("request_completed", "status", status, "duration_ms", dur, "error", errString(err))
			case status >= 400:
				l.Warn("request_completed", "status", status, "duration_ms", dur, "error", errString(err))
			default:
				l.Info("request_completed", "status", status, "duration_ms", dur, "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func sessionUser(ctx context.Context, token AccessToken) string {
	if token == nil {
		return ""
	}
	raw, err := token(ctx)
	if err != nil || raw == "" {
		return ""
	}
	claims, err := tokens.ParseClaims(raw)
	if err != nil {
		return ""
	}
	if claims.Username != "" {
		return claims.Username
	}
	return claims.Subject
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Common is the middleware every storefront route runs behind.
func Common(base *slog.Logger, token AccessToken) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echomw.Recover(),
		echomw.RequestID(),
		RequestLogger(base, token),
		echomw.Secure(),
	}
}
