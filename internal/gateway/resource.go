// Package gateway maps the backend's REST resources onto typed calls. It does
// no filtering, sorting or paging of its own: that is the backend's job.
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
)

// ListParams are the collection query parameters. Zero values are omitted.
type ListParams struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Search string `json:"search,omitempty"`
	Role   string `json:"role,omitempty"`
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		v.Set("search", s)
	}
	if p.Role != "" {
		v.Set("role", p.Role)
	}
	return v
}

// Resource is a CRUD-shaped backend collection of T created from C and
// updated from U.
type Resource[T, C, U any] struct {
	client *apiclient.Client
	path   string
}

func NewResource[T, C, U any](c *apiclient.Client, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: c, path: "/" + strings.Trim(path, "/")}
}

func (r *Resource[T, C, U]) collection() string { return r.path + "/" }

func (r *Resource[T, C, U]) item(id int) string { return r.path + "/" + strconv.Itoa(id) }

func (r *Resource[T, C, U]) List(ctx context.Context, p ListParams) (models.List[T], error) {
	var out models.List[T]
	err := r.client.Do(ctx, &apiclient.Request{
		Method: http.MethodGet,
		Path:   r.collection(),
		Query:  p.Values(),
	}, &out)
	return out, err
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id int) (models.Envelope[T], error) {
	var out models.Envelope[T]
	err := r.client.Do(ctx, &apiclient.Request{Method: http.MethodGet, Path: r.item(id)}, &out)
	return out, err
}

func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (models.Envelope[T], error) {
	var out models.Envelope[T]
	err := r.client.Do(ctx, &apiclient.Request{Method: http.MethodPost, Path: r.collection(), Body: in}, &out)
	return out, err
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id int, in U) (models.Envelope[T], error) {
	var out models.Envelope[T]
	err := r.client.Do(ctx, &apiclient.Request{Method: http.MethodPut, Path: r.item(id), Body: in}, &out)
	return out, err
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id int) (models.Envelope[T], error) {
	var out models.Envelope[T]
	err := r.client.Do(ctx, &apiclient.Request{Method: http.MethodDelete, Path: r.item(id)}, &out)
	return out, err
}

type (
	Products   = Resource[models.Product, models.ProductCreateInput, models.ProductUpdateInput]
	Categories = Resource[models.Category, models.CategoryInput, models.CategoryInput]
	Carts      = Resource[models.Cart, models.CartInput, models.CartInput]
	Users      = Resource[models.User, models.UserCreateInput, models.UserUpdateInput]
)

func NewProducts(c *apiclient.Client) *Products {
	return NewResource[models.Product, models.ProductCreateInput, models.ProductUpdateInput](c, "products")
}

func NewCategories(c *apiclient.Client) *Categories {
	return NewResource[models.Category, models.CategoryInput, models.CategoryInput](c, "categories")
}

func NewCarts(c *apiclient.Client) *Carts {
	return NewResource[models.Cart, models.CartInput, models.CartInput](c, "carts")
}

func NewUsers(c *apiclient.Client) *Users {
	return NewResource[models.User, models.UserCreateInput, models.UserUpdateInput](c, "users")
}
