package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/pages"
)

func intParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

func (s *Storefront) Products(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	var q pages.ProductsQuery
	if err := echo.QueryParamsBinder(c).Int("page", &q.Page).String("search", &q.Search).BindError(); err != nil {
		return badRequest(l, "products_list_failed", "invalid query", err)
	}

	v, err := s.products.Load(ctx, q)
	if err != nil {
		return fail(l, "products_list_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) Product(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(l, "product_get_failed", "id is not an integer", err)
	}

	v, err := s.product.Load(ctx, id)
	if err != nil {
		return fail(l, "product_get_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

type quantityRequest struct {
	Quantity int `json:"quantity" form:"quantity"`
}

func (s *Storefront) AddProductToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.add_to_cart")

	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(l, "add_to_cart_failed", "id is not an integer", err)
	}
	req := quantityRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_failed", "invalid body", err)
	}

	v, err := s.product.AddToCart(ctx, id, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_failed", err)
	}
	l.Info("add_to_cart_success", "product_id", id, "cart_id", v.CartID)
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.list")

	v, err := s.categories.Load(ctx)
	if err != nil {
		return fail(l, "categories_list_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) Category(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.get")

	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(l, "category_get_failed", "id is not an integer", err)
	}
	page := 1
	if err := echo.QueryParamsBinder(c).Int("page", &page).BindError(); err != nil {
		return badRequest(l, "category_get_failed", "invalid query", err)
	}

	v, err := s.category.Load(ctx, id, page)
	if err != nil {
		return fail(l, "category_get_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}
