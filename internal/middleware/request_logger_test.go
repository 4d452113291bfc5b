package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
)

func signed(t *testing.T, username string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokens.Claims{Username: username}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "info")
	tok := signed(t, "jo")

	e := echo.New()
	for _, m := range Common(base, func(context.Context) (string, error) { return tok, nil }) {
		e.Use(m)
	}
	e.GET("/ok", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	out := buf.String()
	assert.Contains(t, out, `"msg":"inside"`)
	assert.Contains(t, out, `"user":"jo"`)
	assert.Contains(t, out, `"path":"/ok"`)
	assert.Contains(t, out, `"request_id":"`+rec.Header().Get(echo.HeaderXRequestID)+`"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":404`)
}

func TestSessionUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, sessionUser(ctx, nil))
	assert.Empty(t, sessionUser(ctx, func(context.Context) (string, error) { return "opaque", nil }))
	assert.Equal(t, "jo", sessionUser(ctx, func(context.Context) (string, error) { return signed(t, "jo"), nil }))
}
