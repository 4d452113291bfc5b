package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/events"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/gateway"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/query"
)

var (
	// ErrQuantityOutOfRange rejects a quantity change that would leave a line
	// below one or above the product's stock. Nothing is sent.
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrItemNotInCart      = errors.New("product not in cart")
	ErrNoCart             = errors.New("no cart available")
)

func cartKey(id int) query.Key { return query.ItemKey(ResCarts, id) }

// Carts lists carts; admin only on the backend.
func (h *Hooks) Carts(ctx context.Context, p gateway.ListParams) (models.List[models.Cart], error) {
	return listOf(ctx, h.d.Cache, ResCarts, 0, p, h.d.Carts.List)
}

func (h *Hooks) Cart(ctx context.Context, id int) (models.Cart, error) {
	return itemOf(ctx, h.d.Cache, ResCarts, 0, id, h.d.Carts.Get)
}

// CachedCart returns the cart as currently cached, optimistic edits included.
func (h *Hooks) CachedCart(id int) (models.Cart, bool) {
	return query.Get[models.Cart](h.d.Cache, cartKey(id))
}

func (h *Hooks) CreateCart(ctx context.Context, items []models.CartItemInput) (models.Cart, error) {
	env, err := h.d.Carts.Create(ctx, models.CartInput{CartItems: items})
	if err != nil {
		h.fail(ctx, errorMessage(err, "Failed to create cart"))
		return models.Cart{}, err
	}
	h.d.Cache.InvalidateResource(ResCarts)
	h.succeed(ctx, "Cart created successfully")
	h.publish(ctx, events.CartCreated, strconv.Itoa(env.Data.ID), cartPayload(env.Data.ID, items))
	return env.Data, nil
}

func (h *Hooks) DeleteCart(ctx context.Context, id int) error {
	if _, err := h.d.Carts.Delete(ctx, id); err != nil {
		h.fail(ctx, "Failed to delete cart")
		return err
	}
	h.d.Cache.InvalidateResource(ResCarts)
	h.succeed(ctx, "Cart deleted successfully")
	h.publish(ctx, events.CartDeleted, strconv.Itoa(id), map[string]any{"cart_id": id})
	return nil
}

// UpdateCart replaces the cart's lines with items. The cached cart shows the
// new lines straight away; if the backend refuses, the cached cart goes back
// to exactly what it was. Either way the cart is refetched afterwards.
func (h *Hooks) UpdateCart(ctx context.Context, id int, items []models.CartItemInput) (models.Cart, error) {
	l := logging.FromContext(ctx).With("hook", "UpdateCart", "cart_id", id)
	key := cartKey(id)

	m := query.Begin(h.d.Cache, key, func(cur models.Cart, ok bool) (models.Cart, bool) {
		if !ok {
			return cur, false
		}
		return cur.WithItems(items), true
	})
	defer func() {
		h.d.Cache.Invalidate(key)
		h.d.Cache.InvalidateResource(ResCarts)
	}()

	env, err := h.d.Carts.Update(ctx, id, models.CartInput{CartItems: items})
	if err != nil {
		if rbErr := m.Rollback(); rbErr != nil {
			l.Error("cart_update", slog.String("status", "failed"), slog.String("reason", "rollback"), slog.Any("error", rbErr))
		}
		l.Warn("cart_update", slog.String("status", "rolled_back"), slog.Any("error", err))
		h.fail(ctx, "Failed to update cart")
		h.publish(ctx, events.CartRolledBack, strconv.Itoa(id), cartPayload(id, items))
		return models.Cart{}, err
	}

	if err := m.Commit(); err != nil {
		l.Error("cart_update", slog.String("status", "failed"), slog.String("reason", "commit"), slog.Any("error", err))
	}
	l.Info("cart_update", slog.String("status", "committed"), slog.Int("lines", len(items)))
	h.succeed(ctx, "Cart updated successfully")
	h.publish(ctx, events.CartUpdated, strconv.Itoa(id), cartPayload(id, items))
	return env.Data, nil
}

func cartPayload(id int, items []models.CartItemInput) map[string]any {
	return map[string]any{"cart_id": id, "cart_items": items}
}

// current is the cart the next edit is based on: the cached one when there
// is one, else a fetch.
func (h *Hooks) current(ctx context.Context, id int) (models.Cart, error) {
	if c, ok := h.CachedCart(id); ok {
		return c, nil
	}
	return h.Cart(ctx, id)
}

// AddItem adds quantity of productID to the cart, summing with an existing
// line. It merges against the cart as the backend has it now; a sum above
// stock is rejected before anything is sent.
func (h *Hooks) AddItem(ctx context.Context, id, productID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, fmt.Errorf("%w: %d", ErrQuantityOutOfRange, quantity)
	}
	env, err := h.d.Carts.Get(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}
	total := quantity
	if line, ok := env.Data.Item(productID); ok {
		total += line.Quantity
	}
	if err := h.checkStock(ctx, env.Data, productID, total); err != nil {
		return models.Cart{}, err
	}
	cart, err := h.UpdateCart(ctx, id, AddLine(env.Data.Inputs(), productID, quantity))
	if err != nil {
		return models.Cart{}, err
	}
	h.succeed(ctx, "Item added to cart")
	return cart, nil
}

// SetQuantity sets productID's line to quantity within [1, stock], adding the
// line if missing. Setting the same quantity twice sends the same lines twice.
func (h *Hooks) SetQuantity(ctx context.Context, id, productID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, fmt.Errorf("%w: %d", ErrQuantityOutOfRange, quantity)
	}
	cur, err := h.current(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}
	if err := h.checkStock(ctx, cur, productID, quantity); err != nil {
		return models.Cart{}, err
	}
	return h.UpdateCart(ctx, id, SetLine(cur.Inputs(), productID, quantity))
}

func (h *Hooks) RemoveItem(ctx context.Context, id, productID int) (models.Cart, error) {
	cur, err := h.current(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}
	return h.UpdateCart(ctx, id, RemoveLine(cur.Inputs(), productID))
}

// checkStock rejects a line quantity above productID's stock. The stock comes
// from the cart line's product snapshot, or from the catalogue for a new line.
func (h *Hooks) checkStock(ctx context.Context, cart models.Cart, productID, quantity int) error {
	stock := 0
	if line, ok := cart.Item(productID); ok {
		stock = line.Product.Stock
	} else {
		p, err := h.Product(ctx, productID)
		if err != nil {
			return err
		}
		stock = p.Stock
	}
	if quantity > stock {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrQuantityOutOfRange, quantity, stock)
	}
	return nil
}

// ChangeQuantity moves productID's quantity by delta within [1, stock].
func (h *Hooks) ChangeQuantity(ctx context.Context, id, productID, delta int) (models.Cart, error) {
	cur, err := h.current(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}
	line, ok := cur.Item(productID)
	if !ok {
		return models.Cart{}, fmt.Errorf("%w: product %d", ErrItemNotInCart, productID)
	}
	next := line.Quantity + delta
	if next < 1 || next > line.Product.Stock {
		return models.Cart{}, fmt.Errorf("%w: %d not in [1, %d]", ErrQuantityOutOfRange, next, line.Product.Stock)
	}
	return h.UpdateCart(ctx, id, SetLine(cur.Inputs(), productID, next))
}

// ResolveCartID picks the signed-in account's first cart, falling back to the
// configured cart id.
func (h *Hooks) ResolveCartID(ctx context.Context) (int, error) {
	acc, err := h.Account(ctx)
	if err != nil {
		return 0, err
	}
	if len(acc.Carts) > 0 && acc.Carts[0].ID > 0 {
		return acc.Carts[0].ID, nil
	}
	if h.d.FallbackCartID > 0 {
		return h.d.FallbackCartID, nil
	}
	return 0, ErrNoCart
}

// AddLine returns items with quantity more of productID.
func AddLine(items []models.CartItemInput, productID, quantity int) []models.CartItemInput {
	out := make([]models.CartItemInput, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ProductID == productID {
			it.Quantity += quantity
			found = true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, models.CartItemInput{ProductID: productID, Quantity: quantity})
	}
	return out
}

// SetLine returns items with productID at exactly quantity.
func SetLine(items []models.CartItemInput, productID, quantity int) []models.CartItemInput {
	out := make([]models.CartItemInput, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ProductID == productID {
			it.Quantity = quantity
			found = true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, models.CartItemInput{ProductID: productID, Quantity: quantity})
	}
	return out
}

func RemoveLine(items []models.CartItemInput, productID int) []models.CartItemInput {
	out := make([]models.CartItemInput, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
