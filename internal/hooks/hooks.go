// Package hooks puts the query cache in front of the gateways: reads are
// cached per resource, writes invalidate what they touch, and every outcome is
// reported to the user and to the event stream.
package hooks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/config"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/events"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/gateway"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/notify"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/query"
)

// Cache resource names.
const (
	ResProducts   = "products"
	ResCategories = "categories"
	ResCarts      = "carts"
	ResUsers      = "users"
	ResAccount    = "account"
)

type Deps struct {
	Products   *gateway.Products
	Categories *gateway.Categories
	Carts      *gateway.Carts
	Users      *gateway.Users
	Account    *gateway.Account
	Auth       *gateway.Auth

	Cache    *query.Cache
	Notifier notify.Notifier
	Events   events.Publisher
	Tuning   config.Tuning

	// FallbackCartID is used when the signed-in account owns no cart.
	FallbackCartID int
}

// Gateways fills the gateway fields of d from c.
func (d Deps) Gateways(c *apiclient.Client) Deps {
	d.Products = gateway.NewProducts(c)
	d.Categories = gateway.NewCategories(c)
	d.Carts = gateway.NewCarts(c)
	d.Users = gateway.NewUsers(c)
	d.Account = gateway.NewAccount(c)
	d.Auth = gateway.NewAuth(c)
	return d
}

type Hooks struct {
	d Deps
}

func New(d Deps) *Hooks {
	if d.Cache == nil {
		d.Cache = query.New()
	}
	if d.Notifier == nil {
		d.Notifier = notify.Log{}
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Tuning == (config.Tuning{}) {
		d.Tuning = config.DefaultTuning()
	}
	return &Hooks{d: d}
}

func (h *Hooks) Cache() *query.Cache { return h.d.Cache }

func (h *Hooks) Tuning() config.Tuning { return h.d.Tuning }

// invalidate marks [resource, id] and every [resource, ...] stale.
func (h *Hooks) invalidate(resource string, id int) {
	h.d.Cache.Invalidate(query.ItemKey(resource, id))
	h.d.Cache.InvalidateResource(resource)
}

func (h *Hooks) publish(ctx context.Context, typ, key string, payload map[string]any) {
	ev := events.Event{Type: typ, Key: key, Payload: payload}
	// Outcomes are reported even when the triggering call was cancelled.
	if err := h.d.Events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logging.FromContext(ctx).Error("event_publish",
			slog.String("type", typ),
			slog.String("status", "failed"),
			slog.Any("error", err),
		)
	}
}

func (h *Hooks) succeed(ctx context.Context, msg string) { notify.Succeed(ctx, h.d.Notifier, msg) }

func (h *Hooks) fail(ctx context.Context, msg string) { notify.Fail(ctx, h.d.Notifier, msg) }

// errorMessage prefers the backend's own message over fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
