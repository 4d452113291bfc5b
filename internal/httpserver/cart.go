package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/pages"
)

func (s *Storefront) Cart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	v, err := s.cart.Load(ctx)
	if err != nil {
		return fail(l, "cart_get_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

type addItemRequest struct {
	ProductID int `json:"product_id" form:"product_id"`
	Quantity  int `json:"quantity" form:"quantity"`
}

func (s *Storefront) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	req := addItemRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		return badRequest(l, "cart_add_item_failed", "invalid body", err)
	}

	v, err := s.cart.Add(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "cart_add_item_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) SetCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_item")

	productID, err := intParam(c, "productId")
	if err != nil {
		return badRequest(l, "cart_set_item_failed", "productId is not an integer", err)
	}
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "cart_set_item_failed", "invalid body", err)
	}

	v, err := s.cart.SetQuantity(ctx, productID, req.Quantity)
	if err != nil {
		return fail(l, "cart_set_item_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) IncrementCartItem(c echo.Context) error {
	return s.cartItemAction(c, "cart.increment", s.cart.Increment)
}

func (s *Storefront) DecrementCartItem(c echo.Context) error {
	return s.cartItemAction(c, "cart.decrement", s.cart.Decrement)
}

func (s *Storefront) RemoveCartItem(c echo.Context) error {
	return s.cartItemAction(c, "cart.remove_item", s.cart.Remove)
}

func (s *Storefront) cartItemAction(c echo.Context, handler string, fn func(ctx context.Context, productID int) (pages.CartView, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	productID, err := intParam(c, "productId")
	if err != nil {
		return badRequest(l, "cart_item_failed", "productId is not an integer", err)
	}

	v, err := fn(ctx, productID)
	if err != nil {
		return fail(l, "cart_item_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}
