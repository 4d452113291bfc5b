// Package views turns backend models into the display-ready shapes the
// storefront renders: formatted prices, badges, button states.
package views

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
)

const lowStockThreshold = 10

type Badge string

const (
	BadgeLowStock   Badge = "Low Stock"
	BadgeOutOfStock Badge = "Out of Stock"
)

func productHref(id int) string { return "/products/" + strconv.Itoa(id) }

type ProductCard struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Brand         string  `json:"brand,omitempty"`
	Thumbnail     string  `json:"thumbnail,omitempty"`
	Href          string  `json:"href"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"original_price,omitempty"`
	Discount      string  `json:"discount,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Badges        []Badge `json:"badges,omitempty"`
	CanAddToCart  bool    `json:"can_add_to_cart"`
	ButtonLabel   string  `json:"button_label"`
}

func NewProductCard(p models.Product) ProductCard {
	c := ProductCard{
		ID:           p.ID,
		Title:        p.Title,
		Brand:        p.Brand,
		Thumbnail:    p.Thumbnail,
		Href:         productHref(p.ID),
		Price:        models.FormatMoney(p.EffectivePrice()),
		Rating:       p.Rating,
		Badges:       badges(p),
		CanAddToCart: p.Stock > 0,
		ButtonLabel:  "Add to Cart",
	}
	if p.HasDiscount() {
		c.OriginalPrice = models.FormatMoney(decimal.NewFromFloat(p.Price))
		c.Discount = fmt.Sprintf("-%s%%", decimal.NewFromFloat(p.DiscountPercentage).String())
	}
	if !c.CanAddToCart {
		c.ButtonLabel = "Out of Stock"
	}
	return c
}

func NewProductCards(ps []models.Product) []ProductCard {
	out := make([]ProductCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductCard(p))
	}
	return out
}

func badges(p models.Product) []Badge {
	var out []Badge
	switch {
	case p.Stock == 0:
		out = append(out, BadgeOutOfStock)
	case p.Stock < lowStockThreshold:
		out = append(out, BadgeLowStock)
	}
	return out
}

type ProductDetail struct {
	ProductCard
	Description  string   `json:"description"`
	Images       []string `json:"images,omitempty"`
	Category     string   `json:"category,omitempty"`
	CategoryHref string   `json:"category_href,omitempty"`
	Stock        int      `json:"stock"`
	StockLabel   string   `json:"stock_label"`
	LowStockNote string   `json:"low_stock_note,omitempty"`
	// MaxQuantity bounds the quantity selector.
	MaxQuantity int `json:"max_quantity"`
}

func NewProductDetail(p models.Product) ProductDetail {
	d := ProductDetail{
		ProductCard: NewProductCard(p),
		Description: p.Description,
		Images:      p.Images,
		Category:    p.Category.Name,
		Stock:       p.Stock,
		MaxQuantity: p.Stock,
	}
	if p.CategoryID > 0 {
		d.CategoryHref = "/categories/" + strconv.Itoa(p.CategoryID)
	}
	if len(d.Images) == 0 && p.Thumbnail != "" {
		d.Images = []string{p.Thumbnail}
	}
	switch {
	case p.Stock == 0:
		d.StockLabel = string(BadgeOutOfStock)
	case p.Stock < lowStockThreshold:
		d.StockLabel = "In Stock"
		d.LowStockNote = fmt.Sprintf("Only %d left", p.Stock)
	default:
		d.StockLabel = "In Stock"
	}
	return d
}

// ClampQuantity keeps a selected quantity within [1, stock].
func ClampQuantity(q, stock int) int {
	if q > stock {
		q = stock
	}
	if q < 1 {
		q = 1
	}
	return q
}

type CartItemView struct {
	ProductID    int    `json:"product_id"`
	Title        string `json:"title"`
	Brand        string `json:"brand,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Href         string `json:"href"`
	Quantity     int    `json:"quantity"`
	Subtotal     string `json:"subtotal"`
	CanDecrement bool   `json:"can_decrement"`
	CanIncrement bool   `json:"can_increment"`
}

func NewCartItemView(it models.CartItem, updating bool) CartItemView {
	return CartItemView{
		ProductID:    it.ProductID,
		Title:        it.Product.Title,
		Brand:        it.Product.Brand,
		Thumbnail:    it.Product.Thumbnail,
		Href:         productHref(it.ProductID),
		Quantity:     it.Quantity,
		Subtotal:     models.FormatMoney(decimal.NewFromFloat(it.Subtotal)),
		CanDecrement: it.Quantity > 1 && !updating,
		CanIncrement: it.Quantity < it.Product.Stock && !updating,
	}
}

type CartSummary struct {
	Subtotal        string `json:"subtotal"`
	Shipping        string `json:"shipping,omitempty"`
	Tax             string `json:"tax,omitempty"`
	Total           string `json:"total"`
	FreeShipping    bool   `json:"free_shipping"`
	CheckoutEnabled bool   `json:"checkout_enabled"`
	Note            string `json:"note"`
}

// NewCartSummary totals subtotal, shipping and tax. Zero shipping on a
// non-empty cart shows as free.
func NewCartSummary(subtotal, shipping, tax decimal.Decimal, updating bool) CartSummary {
	s := CartSummary{
		Subtotal:        models.FormatMoney(subtotal),
		Total:           models.FormatMoney(subtotal.Add(shipping).Add(tax)),
		FreeShipping:    shipping.IsZero() && subtotal.IsPositive(),
		CheckoutEnabled: !subtotal.IsZero() && !updating,
		Note:            "Taxes and shipping calculated at checkout",
	}
	if shipping.IsPositive() {
		s.Shipping = models.FormatMoney(shipping)
	}
	if tax.IsPositive() {
		s.Tax = models.FormatMoney(tax)
	}
	return s
}

type EmptyState struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Action string `json:"action"`
	Href   string `json:"href"`
}

func EmptyCart() EmptyState {
	return EmptyState{
		Title:  "YOUR CART IS EMPTY",
		Body:   "Add some products to get started",
		Action: "Continue Shopping",
		Href:   "/products",
	}
}

func NoProducts() EmptyState {
	return EmptyState{Title: "No products found", Action: "View all products", Href: "/products"}
}

// Plural renders "1 item" / "2 items".
func Plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
