package pages

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/views"
)

type CartView struct {
	CartID  int                  `json:"cart_id"`
	Items   []views.CartItemView `json:"items"`
	Count   string               `json:"count"`
	Summary views.CartSummary    `json:"summary"`
	Empty   *views.EmptyState    `json:"empty,omitempty"`
}

// newCartView renders cart. The subtotal is the backend's total_amount as
// reported; shipping and tax are settled at checkout.
func newCartView(id int, cart models.Cart) CartView {
	v := CartView{
		CartID:  id,
		Items:   make([]views.CartItemView, 0, len(cart.CartItems)),
		Count:   views.Plural(len(cart.CartItems), "item", "items") + " in your cart",
		Summary: views.NewCartSummary(decimal.NewFromFloat(cart.TotalAmount), decimal.Zero, decimal.Zero, false),
	}
	for _, it := range cart.CartItems {
		v.Items = append(v.Items, views.NewCartItemView(it, false))
	}
	if cart.IsEmpty() {
		e := views.EmptyCart()
		v.Empty = &e
	}
	return v
}

type CartPage struct {
	h *hooks.Hooks
}

func NewCartPage(h *hooks.Hooks) *CartPage { return &CartPage{h: h} }

func (p *CartPage) Load(ctx context.Context) (CartView, error) {
	id, err := p.h.ResolveCartID(ctx)
	if err != nil {
		return CartView{}, err
	}
	cart, err := p.h.Cart(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(id, cart), nil
}

func (p *CartPage) do(ctx context.Context, fn func(ctx context.Context, id int) (models.Cart, error)) (CartView, error) {
	id, err := p.h.ResolveCartID(ctx)
	if err != nil {
		return CartView{}, err
	}
	cart, err := fn(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(id, cart), nil
}

func (p *CartPage) Add(ctx context.Context, productID, quantity int) (CartView, error) {
	return p.do(ctx, func(ctx context.Context, id int) (models.Cart, error) {
		return p.h.AddItem(ctx, id, productID, quantity)
	})
}

func (p *CartPage) SetQuantity(ctx context.Context, productID, quantity int) (CartView, error) {
	return p.do(ctx, func(ctx context.Context, id int) (models.Cart, error) {
		return p.h.SetQuantity(ctx, id, productID, quantity)
	})
}

func (p *CartPage) Increment(ctx context.Context, productID int) (CartView, error) {
	return p.do(ctx, func(ctx context.Context, id int) (models.Cart, error) {
		return p.h.ChangeQuantity(ctx, id, productID, 1)
	})
}

func (p *CartPage) Decrement(ctx context.Context, productID int) (CartView, error) {
	return p.do(ctx, func(ctx context.Context, id int) (models.Cart, error) {
		return p.h.ChangeQuantity(ctx, id, productID, -1)
	})
}

func (p *CartPage) Remove(ctx context.Context, productID int) (CartView, error) {
	return p.do(ctx, func(ctx context.Context, id int) (models.Cart, error) {
		return p.h.RemoveItem(ctx, id, productID)
	})
}
