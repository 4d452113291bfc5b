package hooks

import (
	"context"
	"time"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/gateway"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/query"
)

func listOf[T any](ctx context.Context, c *query.Cache, resource string, stale time.Duration, p gateway.ListParams, fn func(context.Context, gateway.ListParams) (models.List[T], error)) (models.List[T], error) {
	return query.Fetch(ctx, c, query.ListKey(resource, p), stale, func(ctx context.Context) (models.List[T], error) {
		return fn(ctx, p)
	})
}

func itemOf[T any](ctx context.Context, c *query.Cache, resource string, stale time.Duration, id int, fn func(context.Context, int) (models.Envelope[T], error)) (T, error) {
	return query.Fetch(ctx, c, query.ItemKey(resource, id), stale, func(ctx context.Context) (T, error) {
		env, err := fn(ctx, id)
		return env.Data, err
	})
}

func (h *Hooks) Products(ctx context.Context, p gateway.ListParams) (models.List[models.Product], error) {
	return listOf(ctx, h.d.Cache, ResProducts, h.d.Tuning.ProductStaleTime, p, h.d.Products.List)
}

func (h *Hooks) Product(ctx context.Context, id int) (models.Product, error) {
	return itemOf(ctx, h.d.Cache, ResProducts, h.d.Tuning.ProductStaleTime, id, h.d.Products.Get)
}

func (h *Hooks) CreateProduct(ctx context.Context, in models.ProductCreateInput) (models.Product, error) {
	env, err := h.d.Products.Create(ctx, in)
	if err != nil {
		return models.Product{}, err
	}
	h.d.Cache.InvalidateResource(ResProducts)
	return env.Data, nil
}

func (h *Hooks) UpdateProduct(ctx context.Context, id int, in models.ProductUpdateInput) (models.Product, error) {
	env, err := h.d.Products.Update(ctx, id, in)
	if err != nil {
		return models.Product{}, err
	}
	h.invalidate(ResProducts, id)
	return env.Data, nil
}

func (h *Hooks) DeleteProduct(ctx context.Context, id int) error {
	if _, err := h.d.Products.Delete(ctx, id); err != nil {
		return err
	}
	h.d.Cache.InvalidateResource(ResProducts)
	return nil
}

func (h *Hooks) Categories(ctx context.Context, p gateway.ListParams) (models.List[models.Category], error) {
	return listOf(ctx, h.d.Cache, ResCategories, h.d.Tuning.CategoryStaleTime, p, h.d.Categories.List)
}

func (h *Hooks) Category(ctx context.Context, id int) (models.Category, error) {
	return itemOf(ctx, h.d.Cache, ResCategories, h.d.Tuning.CategoryStaleTime, id, h.d.Categories.Get)
}

func (h *Hooks) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	env, err := h.d.Categories.Create(ctx, in)
	if err != nil {
		return models.Category{}, err
	}
	h.d.Cache.InvalidateResource(ResCategories)
	return env.Data, nil
}

func (h *Hooks) UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (models.Category, error) {
	env, err := h.d.Categories.Update(ctx, id, in)
	if err != nil {
		return models.Category{}, err
	}
	h.invalidate(ResCategories, id)
	return env.Data, nil
}

func (h *Hooks) DeleteCategory(ctx context.Context, id int) error {
	if _, err := h.d.Categories.Delete(ctx, id); err != nil {
		return err
	}
	h.d.Cache.InvalidateResource(ResCategories)
	return nil
}

// Users and the user writes are admin-only on the backend.

func (h *Hooks) Users(ctx context.Context, p gateway.ListParams) (models.List[models.User], error) {
	return listOf(ctx, h.d.Cache, ResUsers, 0, p, h.d.Users.List)
}

func (h *Hooks) User(ctx context.Context, id int) (models.User, error) {
	return itemOf(ctx, h.d.Cache, ResUsers, 0, id, h.d.Users.Get)
}

func (h *Hooks) CreateUser(ctx context.Context, in models.UserCreateInput) (models.User, error) {
	env, err := h.d.Users.Create(ctx, in)
	if err != nil {
		h.fail(ctx, errorMessage(err, "Failed to create user"))
		return models.User{}, err
	}
	h.d.Cache.InvalidateResource(ResUsers)
	h.succeed(ctx, "User created successfully")
	return env.Data, nil
}

func (h *Hooks) UpdateUser(ctx context.Context, id int, in models.UserUpdateInput) (models.User, error) {
	env, err := h.d.Users.Update(ctx, id, in)
	if err != nil {
		h.fail(ctx, "Failed to update user")
		return models.User{}, err
	}
	h.invalidate(ResUsers, id)
	h.succeed(ctx, "User updated successfully")
	return env.Data, nil
}

func (h *Hooks) DeleteUser(ctx context.Context, id int) error {
	if _, err := h.d.Users.Delete(ctx, id); err != nil {
		h.fail(ctx, "Failed to delete user")
		return err
	}
	h.d.Cache.InvalidateResource(ResUsers)
	h.succeed(ctx, "User deleted successfully")
	return nil
}
