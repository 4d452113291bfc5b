package models

// Clone returns a deep copy so that a cached cart can be snapshotted and
// restored without sharing slices with later edits.
func (c Cart) Clone() Cart {
	out := c
	if c.CartItems != nil {
		out.CartItems = make([]CartItem, len(c.CartItems))
		for i, it := range c.CartItems {
			out.CartItems[i] = it.clone()
		}
	}
	return out
}

func (it CartItem) clone() CartItem {
	out := it
	if it.Product.Images != nil {
		out.Product.Images = append([]string(nil), it.Product.Images...)
	}
	return out
}

func (c Cart) IsEmpty() bool { return len(c.CartItems) == 0 }

// Item returns the line item for productID.
func (c Cart) Item(productID int) (CartItem, bool) {
	for _, it := range c.CartItems {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// Inputs renders the cart lines in the write shape accepted by the backend.
func (c Cart) Inputs() []CartItemInput {
	out := make([]CartItemInput, 0, len(c.CartItems))
	for _, it := range c.CartItems {
		out = append(out, CartItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// WithItems returns a copy of c whose lines follow items in order. Lines already in
// the cart keep their product snapshot and last server subtotal; totals are left
// for the server to recompute.
func (c Cart) WithItems(items []CartItemInput) Cart {
	out := c.Clone()
	lines := make([]CartItem, 0, len(items))
	for _, in := range items {
		line, ok := c.Item(in.ProductID)
		if ok {
			line = line.clone()
		} else {
			line = CartItem{ProductID: in.ProductID}
		}
		line.Quantity = in.Quantity
		lines = append(lines, line)
	}
	out.CartItems = lines
	return out
}
