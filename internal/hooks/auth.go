package hooks

import (
	"context"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/events"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
)

// SignUp registers a user. The user still has to sign in afterwards.
func (h *Hooks) SignUp(ctx context.Context, in models.SignUpInput) (models.User, error) {
	env, err := h.d.Auth.SignUp(ctx, in)
	if err != nil {
		h.fail(ctx, errorMessage(err, "Sign up failed"))
		return models.User{}, err
	}
	h.d.Cache.Clear()
	h.succeed(ctx, "Account created successfully! Please sign in.")
	h.publish(ctx, events.SignedUp, env.Data.Username, map[string]any{"username": env.Data.Username})
	return env.Data, nil
}

func (h *Hooks) SignIn(ctx context.Context, in models.SignInInput) error {
	if _, err := h.d.Auth.SignIn(ctx, in); err != nil {
		h.fail(ctx, errorMessage(err, "Sign in failed"))
		return err
	}
	h.d.Cache.Clear()
	h.succeed(ctx, "Signed in successfully!")
	h.publish(ctx, events.SignedIn, in.Username, map[string]any{"username": in.Username})
	return nil
}

func (h *Hooks) SignOut(ctx context.Context) error {
	if err := h.d.Auth.SignOut(ctx); err != nil {
		return err
	}
	h.d.Cache.Clear()
	h.succeed(ctx, "Signed out successfully")
	h.publish(ctx, events.SignedOut, "", nil)
	return nil
}

// SessionExpired is meant as the client's session-expired callback: the
// cached data belongs to a user who is no longer signed in.
func (h *Hooks) SessionExpired(ctx context.Context) {
	h.d.Cache.Clear()
	h.fail(ctx, "Your session has expired. Please sign in again.")
	h.publish(ctx, events.SessionExpired, "", nil)
}
