package hooks

import (
	"context"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/events"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/query"
)

var accountKey = query.ResourceKey(ResAccount)

func (h *Hooks) Account(ctx context.Context) (models.Account, error) {
	return query.Fetch(ctx, h.d.Cache, accountKey, h.d.Tuning.AccountStaleTime, func(ctx context.Context) (models.Account, error) {
		env, err := h.d.Account.Me(ctx)
		return env.Data, err
	})
}

func (h *Hooks) UpdateAccount(ctx context.Context, in models.AccountUpdateInput) (models.Account, error) {
	env, err := h.d.Account.UpdateMe(ctx, in)
	if err != nil {
		h.fail(ctx, "Failed to update account")
		return models.Account{}, err
	}
	h.d.Cache.InvalidateResource(ResAccount)
	h.succeed(ctx, "Account updated successfully")
	h.publish(ctx, events.AccountUpdated, env.Data.Username, nil)
	return env.Data, nil
}

// DeleteAccount removes the signed-in account and forgets everything cached
// for it, tokens included.
func (h *Hooks) DeleteAccount(ctx context.Context) error {
	env, err := h.d.Account.DeleteMe(ctx)
	if err != nil {
		h.fail(ctx, "Failed to delete account")
		return err
	}
	h.d.Cache.Clear()
	if err := h.d.Auth.SignOut(ctx); err != nil {
		return err
	}
	h.succeed(ctx, "Account deleted successfully")
	h.publish(ctx, events.AccountDeleted, env.Data.Username, nil)
	return nil
}
