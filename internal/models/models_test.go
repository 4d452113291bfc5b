package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_EffectivePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    float64
		discount float64
		want     string
	}{
		{name: "no discount", price: 10, discount: 0, want: "10.00"},
		{name: "fifteen percent", price: 20, discount: 15, want: "17.00"},
		{name: "rounds to cents", price: 9.99, discount: 33, want: "6.69"},
		{name: "full discount", price: 12.5, discount: 100, want: "0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Product{Price: tt.price, DiscountPercentage: tt.discount}
			assert.Equal(t, tt.want, p.EffectivePrice().StringFixed(2))
		})
	}
}

func TestCart_Consistent(t *testing.T) {
	t.Parallel()

	c := Cart{
		TotalAmount: 30,
		CartItems: []CartItem{
			{ProductID: 5, Quantity: 3, Subtotal: 30},
		},
	}
	assert.True(t, c.Consistent())

	c.TotalAmount = 20
	assert.False(t, c.Consistent())
}

func TestLineSubtotal_IgnoresDiscount(t *testing.T) {
	t.Parallel()

	p := Product{Price: 10, DiscountPercentage: 50}
	assert.True(t, LineSubtotal(p, 3).Equal(decimal.NewFromInt(30)))
}

func TestCart_WithItems_KeepsSnapshotsAndOrder(t *testing.T) {
	t.Parallel()

	orig := Cart{
		ID: 1,
		CartItems: []CartItem{
			{ID: 10, ProductID: 5, Quantity: 2, Subtotal: 20, Product: Product{ID: 5, Title: "Shampoo", Images: []string{"a"}}},
			{ID: 11, ProductID: 6, Quantity: 1, Subtotal: 8, Product: Product{ID: 6, Title: "Conditioner"}},
		},
		TotalAmount: 28,
	}

	next := orig.WithItems([]CartItemInput{{ProductID: 5, Quantity: 3}, {ProductID: 9, Quantity: 1}})

	require.Len(t, next.CartItems, 2)
	assert.Equal(t, 3, next.CartItems[0].Quantity)
	assert.Equal(t, "Shampoo", next.CartItems[0].Product.Title)
	assert.Equal(t, 20.0, next.CartItems[0].Subtotal)
	assert.Equal(t, 9, next.CartItems[1].ProductID)
	assert.Equal(t, 28.0, next.TotalAmount)

	next.CartItems[0].Product.Images[0] = "changed"
	assert.Equal(t, 2, orig.CartItems[0].Quantity)
	assert.Equal(t, "a", orig.CartItems[0].Product.Images[0])
}

func TestEnvelope_DecodesCollection(t *testing.T) {
	t.Parallel()

	raw := `{"message":"ok","data":[{"id":1,"name":"Hair"},{"id":2,"name":"Skin"}]}`
	var env List[Category]
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, []Category{{ID: 1, Name: "Hair"}, {ID: 2, Name: "Skin"}}, env.Data)
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$30.00", FormatMoney(decimal.NewFromInt(30)))
}
