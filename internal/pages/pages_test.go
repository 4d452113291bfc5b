package pages

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/config"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/notify"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/storage"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

type backend struct {
	mu       sync.Mutex
	products []models.Product
	cart     models.Cart
	queries  []string
	puts     []string
	meStatus int
	requests int
}

func (b *backend) write(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests++

	switch {
	case r.URL.Path == "/products/":
		b.queries = append(b.queries, r.URL.RawQuery)
		search := strings.ToLower(r.URL.Query().Get("search"))
		out := []models.Product{}
		for _, p := range b.products {
			if search == "" || strings.Contains(strings.ToLower(p.Title), search) {
				out = append(out, p)
			}
		}
		b.write(w, http.StatusOK, models.List[models.Product]{Data: out})
	case strings.HasPrefix(r.URL.Path, "/products/"):
		b.write(w, http.StatusOK, models.Envelope[models.Product]{Data: b.products[0]})
	case r.URL.Path == "/categories/":
		b.queries = append(b.queries, r.URL.RawQuery)
		b.write(w, http.StatusOK, models.List[models.Category]{Data: []models.Category{{ID: 2, Name: "Beauty"}, {ID: 3, Name: "Home"}}})
	case r.URL.Path == "/categories/2":
		b.write(w, http.StatusOK, models.Envelope[models.Category]{Data: models.Category{ID: 2, Name: "Beauty"}})
	case r.URL.Path == "/me/":
		if b.meStatus != 0 && b.meStatus != http.StatusOK {
			b.write(w, b.meStatus, map[string]string{"detail": "Not authenticated"})
			return
		}
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			b.puts = append(b.puts, string(body))
		}
		b.write(w, http.StatusOK, models.Envelope[models.Account]{Data: models.Account{ID: 3, Username: "jo", Email: "jo@example.com", FullName: "Jo", Carts: []models.Cart{{ID: 1}}}})
	case r.URL.Path == "/carts/1" && r.Method == http.MethodGet:
		b.write(w, http.StatusOK, models.Envelope[models.Cart]{Data: b.cart})
	case r.URL.Path == "/carts/1" && r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.puts = append(b.puts, string(body))
		var in models.CartInput
		_ = json.Unmarshal(body, &in)
		next := models.Cart{ID: 1}
		for _, it := range in.CartItems {
			p := b.products[0]
			sub := p.Price * float64(it.Quantity)
			next.CartItems = append(next.CartItems, models.CartItem{ProductID: it.ProductID, Quantity: it.Quantity, Subtotal: sub, Product: p})
			next.TotalAmount += sub
		}
		b.cart = next
		b.write(w, http.StatusOK, models.Envelope[models.Cart]{Data: next})
	case r.URL.Path == "/auth/login":
		b.write(w, http.StatusOK, map[string]string{"access_token": "a1", "refresh_token": "r1"})
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) listQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *backend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

type env struct {
	b     *backend
	h     *hooks.Hooks
	store *tokens.Store
}

func newEnv(t *testing.T, products ...models.Product) *env {
	t.Helper()
	if len(products) == 0 {
		products = []models.Product{{ID: 5, Title: "Shampoo", Price: 10, Stock: 4, CategoryID: 2}}
	}
	b := &backend{
		products: products,
		cart: models.Cart{ID: 1, TotalAmount: 20, CartItems: []models.CartItem{
			{ProductID: 5, Quantity: 2, Subtotal: 20, Product: products[0]},
		}},
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	tuning := config.DefaultTuning()
	tuning.SearchDebounce = 30 * time.Millisecond

	store := tokens.NewStore(storage.NewMemoryStore())
	h := hooks.New(hooks.Deps{
		Notifier:       notify.NewBuffer(0),
		Tuning:         tuning,
		FallbackCartID: 1,
	}.Gateways(apiclient.New(srv.URL, store)))
	return &env{b: b, h: h, store: store}
}

func catalogue(n, category int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Product{ID: i, Title: "Item", Price: 1, Stock: 5, CategoryID: category})
	}
	return out
}

func TestListState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		count int
		want  ListState
	}{
		{"empty first page", 1, 0, ListState{Page: 1, Limit: 12, IsEmpty: true}},
		{"full page", 1, 12, ListState{Page: 1, Limit: 12, Count: 12, HasNext: true, ShowPager: true}},
		{"short later page", 3, 5, ListState{Page: 3, Limit: 12, Count: 5, HasPrev: true}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewListState(NewPagination(12).At(tt.page), tt.count))
		})
	}
}

func TestPagination(t *testing.T) {
	t.Parallel()

	p := NewPagination(12)
	p.Prev()
	assert.Equal(t, 1, p.Page)
	p.Next()
	p.Next()
	assert.Equal(t, 3, p.Page)
	p.Reset()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.At(-4).Page)
}

func TestProductsPage_Load(t *testing.T) {
	t.Parallel()

	e := newEnv(t, catalogue(12, 1)...)
	v, err := NewProductsPage(e.h).Load(context.Background(), ProductsQuery{Page: 0})
	require.NoError(t, err)

	assert.Len(t, v.Products, 12)
	assert.True(t, v.List.HasNext)
	assert.False(t, v.List.HasPrev)
	assert.Nil(t, v.Empty)
	assert.Equal(t, []string{"limit=12&page=1"}, e.b.listQueries())
}

func TestProductsPage_EmptySearch(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	v, err := NewProductsPage(e.h).Load(context.Background(), ProductsQuery{Page: 1, Search: " comb "})
	require.NoError(t, err)

	assert.Empty(t, v.Products)
	require.NotNil(t, v.Empty)
	assert.False(t, v.List.ShowPager)
	assert.Equal(t, []string{"limit=12&page=1&search=comb"}, e.b.listQueries())
}

func TestCategoriesPage_UsesWideLimit(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	v, err := NewCategoriesPage(e.h).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, v.Categories, 2)
	assert.Equal(t, "/categories/2", v.Categories[0].Href)
	assert.Equal(t, []string{"limit=100"}, e.b.listQueries())
}

func TestCategoryPage_FiltersClientSide(t *testing.T) {
	t.Parallel()

	ps := append(catalogue(3, 2), models.Product{ID: 9, Title: "Lamp", Stock: 1, CategoryID: 3})
	e := newEnv(t, ps...)
	v, err := NewCategoryPage(e.h).Load(context.Background(), 2, 1)
	require.NoError(t, err)

	assert.Equal(t, "BEAUTY", v.Title)
	assert.Len(t, v.Products, 3)
	assert.Equal(t, "3 products in this category", v.Summary)
	assert.False(t, v.List.ShowPager)
	assert.Equal(t, []string{"limit=12&page=1"}, e.b.listQueries())
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	ps := []models.Product{{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 2}, {ID: 3, CategoryID: 1}}
	got := FilterByCategory(ps, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].ID)
	assert.Empty(t, FilterByCategory(ps, 7))
}

func TestSearchPage_DebouncedSingleFetch(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	p := NewSearchPage(e.h)
	defer p.Close()
	ctx := context.Background()

	for _, typed := range []string{"s", "sh", "sha", "sham", "shamp", "shampo", "shampoo"} {
		p.Input(ctx, typed)
	}
	assert.Empty(t, p.Term())

	require.Eventually(t, func() bool { return p.Term() == "shampoo" }, time.Second, 5*time.Millisecond)
	v, err := p.Results(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"limit=12&page=1&search=shampoo"}, e.b.listQueries())
	assert.Len(t, v.Products, 1)
	assert.Equal(t, `Found 1 result for "shampoo"`, v.Summary)
	assert.Equal(t, 1, v.List.Page)
}

func TestSearchPage_NewTermResetsPage(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	p := NewSearchPage(e.h)
	defer p.Close()
	ctx := context.Background()

	p.Input(ctx, "shampoo")
	p.Flush(ctx)
	v, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v.List.Page)

	p.Input(ctx, "soap")
	p.Flush(ctx)
	v, err = p.Results(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v.List.Page)
	assert.Equal(t, []string{
		"limit=12&page=1&search=shampoo",
		"limit=12&page=2&search=shampoo",
		"limit=12&page=1&search=soap",
	}, e.b.listQueries())
}

func TestSearchPage_BlankTermPrompts(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	p := NewSearchPage(e.h)
	defer p.Close()

	p.Input(context.Background(), "   ")
	p.Flush(context.Background())
	v, err := p.Results(context.Background())
	require.NoError(t, err)
	assert.Equal(t, searchPrompt, v.Prompt)
	assert.Empty(t, e.b.listQueries())
}

func TestProductPage_AddToCartRespectsStock(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	page := NewProductPage(e.h)

	// 2 already in the cart plus 10 clamped to the stock of 4 is still too many.
	_, err := page.AddToCart(context.Background(), 5, 10)
	require.ErrorIs(t, err, hooks.ErrQuantityOutOfRange)

	v, err := page.AddToCart(context.Background(), 5, 2)
	require.NoError(t, err)

	e.b.mu.Lock()
	puts := append([]string(nil), e.b.puts...)
	e.b.mu.Unlock()
	assert.Equal(t, []string{`{"cart_items":[{"product_id":5,"quantity":4}]}`}, puts)
	assert.Equal(t, 1, v.CartID)
}

func TestCartPage_LoadAndIncrement(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()
	page := NewCartPage(e.h)

	v, err := page.Load(ctx)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "$20.00", v.Summary.Subtotal)
	assert.Equal(t, "1 item in your cart", v.Count)
	assert.True(t, v.Items[0].CanIncrement)

	v, err = page.Increment(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Items[0].Quantity)
	assert.Equal(t, "$30.00", v.Summary.Total)

	_, err = page.Increment(ctx, 5)
	require.NoError(t, err)
	_, err = page.Increment(ctx, 5)
	require.ErrorIs(t, err, hooks.ErrQuantityOutOfRange)

	v, err = page.Remove(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, v.Empty)
	assert.Equal(t, "YOUR CART IS EMPTY", v.Empty.Title)
	assert.False(t, v.Summary.CheckoutEnabled)
}

func TestProfilePage_RequiresSignIn(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.b.mu.Lock()
	e.b.meStatus = http.StatusUnauthorized
	e.b.mu.Unlock()

	_, err := NewProfilePage(e.h).Load(context.Background())
	require.Error(t, err)
	assert.True(t, NeedsSignIn(err))
}

func TestProfilePage_UpdateValidatesFirst(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	page := NewProfilePage(e.h)

	_, err := page.Update(context.Background(), validate.ProfileForm{FullName: "Jo", Username: "jo", Email: "nope"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Invalid email address", verrs["email"])
	assert.Zero(t, e.b.requestCount())

	v, err := page.Update(context.Background(), validate.ProfileForm{FullName: "Jo Doe", Username: "jo", Email: "jo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 3, v.ID)
	e.b.mu.Lock()
	defer e.b.mu.Unlock()
	assert.JSONEq(t, `{"full_name":"Jo Doe","username":"jo","email":"jo@example.com"}`, e.b.puts[0])
}

func TestAuthPage_SignInAndOut(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()
	page := NewAuthPage(e.h)

	_, err := page.SignIn(ctx, validate.SignInForm{Username: "jo"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)

	r, err := page.SignIn(ctx, validate.SignInForm{Username: "jo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, ProductsPath, r.To)
	access, _ := e.store.AccessToken(ctx)
	assert.Equal(t, "a1", access)

	r, err = page.SignOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, HomePath, r.To)
	access, _ = e.store.AccessToken(ctx)
	assert.Empty(t, access)
}
