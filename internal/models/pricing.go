package models

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func money(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// EffectivePrice is price × (1 − discount/100), rounded to cents.
func (p Product) EffectivePrice() decimal.Decimal {
	price := money(p.Price)
	if p.DiscountPercentage <= 0 {
		return price.Round(2)
	}
	off := price.Mul(money(p.DiscountPercentage)).Div(hundred)
	return price.Sub(off).Round(2)
}

func (p Product) HasDiscount() bool { return p.DiscountPercentage > 0 }

// LineSubtotal is the pre-discount price × quantity, the shape the backend reports.
func LineSubtotal(p Product, quantity int) decimal.Decimal {
	return money(p.Price).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// SumSubtotals adds the server-reported subtotals of every line.
func (c Cart) SumSubtotals() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.CartItems {
		total = total.Add(money(it.Subtotal))
	}
	return total.Round(2)
}

// Consistent reports whether total_amount equals the sum of line subtotals.
func (c Cart) Consistent() bool {
	return c.SumSubtotals().Equal(money(c.TotalAmount).Round(2))
}

// FormatMoney renders an amount as $0.00.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
