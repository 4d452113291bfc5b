package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/gateway"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/views"
)

var ErrOutOfStock = errors.New("product out of stock")

type ProductsQuery struct {
	Page   int    `query:"page"`
	Search string `query:"search"`
}

type ProductsView struct {
	Products []views.ProductCard `json:"products"`
	List     ListState           `json:"list"`
	Search   string              `json:"search,omitempty"`
	Empty    *views.EmptyState   `json:"empty,omitempty"`
}

type ProductsPage struct {
	h *hooks.Hooks
}

func NewProductsPage(h *hooks.Hooks) *ProductsPage { return &ProductsPage{h: h} }

func (p *ProductsPage) Load(ctx context.Context, q ProductsQuery) (ProductsView, error) {
	pag := NewPagination(p.h.Tuning().PageSize).At(q.Page)
	search := strings.TrimSpace(q.Search)

	list, err := p.h.Products(ctx, gateway.ListParams{Page: pag.Page, Limit: pag.Limit, Search: search})
	if err != nil {
		return ProductsView{}, err
	}

	v := ProductsView{
		Products: views.NewProductCards(list.Data),
		List:     NewListState(pag, len(list.Data)),
		Search:   search,
	}
	// The full catalogue shows its pager whenever it has anything to page.
	v.List.ShowPager = !v.List.IsEmpty
	if v.List.IsEmpty {
		e := views.NoProducts()
		v.Empty = &e
	}
	return v, nil
}

type ProductPage struct {
	h *hooks.Hooks
}

func NewProductPage(h *hooks.Hooks) *ProductPage { return &ProductPage{h: h} }

func (p *ProductPage) Load(ctx context.Context, id int) (views.ProductDetail, error) {
	prod, err := p.h.Product(ctx, id)
	if err != nil {
		return views.ProductDetail{}, err
	}
	return views.NewProductDetail(prod), nil
}

// AddToCart adds quantity of product id to the user's cart. The quantity is
// clamped to what is in stock; a total above stock once merged with the
// existing line is rejected with hooks.ErrQuantityOutOfRange.
func (p *ProductPage) AddToCart(ctx context.Context, id, quantity int) (CartView, error) {
	prod, err := p.h.Product(ctx, id)
	if err != nil {
		return CartView{}, err
	}
	if prod.Stock <= 0 {
		return CartView{}, fmt.Errorf("%w: %s", ErrOutOfStock, prod.Title)
	}

	cartID, err := p.h.ResolveCartID(ctx)
	if err != nil {
		return CartView{}, err
	}
	cart, err := p.h.AddItem(ctx, cartID, id, views.ClampQuantity(quantity, prod.Stock))
	if err != nil {
		return CartView{}, err
	}
	return newCartView(cartID, cart), nil
}

type CategoryTile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

type CategoriesView struct {
	Categories []CategoryTile `json:"categories"`
	IsEmpty    bool           `json:"is_empty"`
}

type CategoriesPage struct {
	h *hooks.Hooks
}

func NewCategoriesPage(h *hooks.Hooks) *CategoriesPage { return &CategoriesPage{h: h} }

func (p *CategoriesPage) Load(ctx context.Context) (CategoriesView, error) {
	list, err := p.h.Categories(ctx, gateway.ListParams{Limit: p.h.Tuning().CategoryPageSize})
	if err != nil {
		return CategoriesView{}, err
	}
	v := CategoriesView{Categories: make([]CategoryTile, 0, len(list.Data)), IsEmpty: len(list.Data) == 0}
	for _, c := range list.Data {
		v.Categories = append(v.Categories, CategoryTile{ID: c.ID, Name: c.Name, Href: "/categories/" + strconv.Itoa(c.ID)})
	}
	return v, nil
}

type CategoryView struct {
	Category CategoryTile        `json:"category"`
	Title    string              `json:"title"`
	Summary  string              `json:"summary"`
	Products []views.ProductCard `json:"products"`
	List     ListState           `json:"list"`
}

type CategoryPage struct {
	h *hooks.Hooks
}

func NewCategoryPage(h *hooks.Hooks) *CategoryPage { return &CategoryPage{h: h} }

// Load fetches one page of the whole catalogue and keeps the products of
// category id. The backend has no category filter, so a page may hold fewer
// matches than the limit even when more exist further on.
func (p *CategoryPage) Load(ctx context.Context, id, page int) (CategoryView, error) {
	cat, err := p.h.Category(ctx, id)
	if err != nil {
		return CategoryView{}, err
	}

	pag := NewPagination(p.h.Tuning().PageSize).At(page)
	list, err := p.h.Products(ctx, gateway.ListParams{Page: pag.Page, Limit: pag.Limit})
	if err != nil {
		return CategoryView{}, err
	}
	matched := FilterByCategory(list.Data, id)

	return CategoryView{
		Category: CategoryTile{ID: cat.ID, Name: cat.Name, Href: "/categories/" + strconv.Itoa(cat.ID)},
		Title:    strings.ToUpper(cat.Name),
		Summary:  views.Plural(len(matched), "product", "products") + " in this category",
		Products: views.NewProductCards(matched),
		List:     NewListState(pag, len(matched)),
	}, nil
}

func FilterByCategory(ps []models.Product, categoryID int) []models.Product {
	out := make([]models.Product, 0, len(ps))
	for _, p := range ps {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}
