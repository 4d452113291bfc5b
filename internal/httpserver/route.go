// Package httpserver is the storefront's backend-for-frontend: it serves the
// pages as JSON to the browser shell.
package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/notify"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/pages"
)

type Deps struct {
	Hooks         *hooks.Hooks
	Notifications *notify.Buffer
	// Ready reports whether the backend and storage can serve requests.
	Ready func(ctx context.Context) error
}

type Storefront struct {
	products   *pages.ProductsPage
	product    *pages.ProductPage
	categories *pages.CategoriesPage
	category   *pages.CategoryPage
	cart       *pages.CartPage
	search     *pages.SearchPage
	profile    *pages.ProfilePage
	auth       *pages.AuthPage
	notes      *notify.Buffer
}

func NewStorefront(d *Deps) *Storefront {
	notes := d.Notifications
	if notes == nil {
		notes = notify.NewBuffer(0)
	}
	return &Storefront{
		products:   pages.NewProductsPage(d.Hooks),
		product:    pages.NewProductPage(d.Hooks),
		categories: pages.NewCategoriesPage(d.Hooks),
		category:   pages.NewCategoryPage(d.Hooks),
		cart:       pages.NewCartPage(d.Hooks),
		search:     pages.NewSearchPage(d.Hooks),
		profile:    pages.NewProfilePage(d.Hooks),
		auth:       pages.NewAuthPage(d.Hooks),
		notes:      notes,
	}
}

// Close stops the search debounce timer.
func (s *Storefront) Close() { s.search.Close() }

func Register(e *echo.Echo, d *Deps) *Storefront {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	s := NewStorefront(d)
	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signin", s.SignIn)
	auth.POST("/signup", s.SignUp)
	auth.POST("/signout", s.SignOut)

	api.GET("/products", s.Products)
	api.GET("/products/:id", s.Product)
	api.POST("/products/:id/cart", s.AddProductToCart)

	api.GET("/categories", s.Categories)
	api.GET("/categories/:id", s.Category)

	cart := api.Group("/cart")
	cart.GET("", s.Cart)
	cart.POST("/items", s.AddCartItem)
	cart.PUT("/items/:productId", s.SetCartItem)
	cart.POST("/items/:productId/increment", s.IncrementCartItem)
	cart.POST("/items/:productId/decrement", s.DecrementCartItem)
	cart.DELETE("/items/:productId", s.RemoveCartItem)

	search := api.Group("/search")
	search.POST("/input", s.SearchInput)
	search.GET("", s.SearchResults)
	search.POST("/next", s.SearchNext)
	search.POST("/prev", s.SearchPrev)

	api.GET("/profile", s.Profile)
	api.PUT("/profile", s.UpdateProfile)
	api.DELETE("/profile", s.DeleteProfile)

	api.GET("/notifications", s.Notifications)
	return s
}
