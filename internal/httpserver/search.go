package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
)

type searchInput struct {
	Query string `json:"q" form:"q"`
}

// SearchInput takes each keystroke's text; the term is committed once typing
// pauses.
func (s *Storefront) SearchInput(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.input")

	var req searchInput
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "search_input_failed", "invalid body", err)
	}
	s.search.Input(ctx, req.Query)
	return c.NoContent(http.StatusAccepted)
}

func (s *Storefront) SearchResults(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.results")

	v, err := s.search.Results(ctx)
	if err != nil {
		return fail(l, "search_results_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) SearchNext(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.next")

	v, err := s.search.Next(ctx)
	if err != nil {
		return fail(l, "search_next_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) SearchPrev(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.prev")

	v, err := s.search.Prev(ctx)
	if err != nil {
		return fail(l, "search_prev_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}
