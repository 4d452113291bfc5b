package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/storage"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
)

type seen struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

type recorder struct {
	mu   sync.Mutex
	reqs []seen
}

func (r *recorder) last(t *testing.T) seen {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reqs)
	return r.reqs[len(r.reqs)-1]
}

// newServer records every request and replies with reply.
func newServer(t *testing.T, status int, reply string) (*apiclient.Client, *tokens.Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, seen{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(b),
			Auth:   r.Header.Get("Authorization"),
		})
		rec.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	store := tokens.NewStore(storage.NewMemoryStore())
	return apiclient.New(srv.URL, store), store, rec
}

func TestListParams_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ListParams
		want string
	}{
		{"empty", ListParams{}, ""},
		{"page and limit", ListParams{Page: 2, Limit: 12}, "limit=12&page=2"},
		{"blank search dropped", ListParams{Page: 1, Search: "  "}, "page=1"},
		{"search and role", ListParams{Search: "shampoo", Role: models.RoleAdmin}, "role=admin&search=shampoo"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Values().Encode())
		})
	}
}

func TestProducts_ListPassesParams(t *testing.T) {
	t.Parallel()

	c, _, rec := newServer(t, http.StatusOK, `{"message":"ok","data":[{"id":5,"title":"Soap","price":10}]}`)
	got, err := NewProducts(c).List(context.Background(), ListParams{Page: 1, Limit: 12, Search: "soap"})
	require.NoError(t, err)

	require.Len(t, got.Data, 1)
	assert.Equal(t, "Soap", got.Data[0].Title)
	last := rec.last(t)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/products/", last.Path)
	assert.Equal(t, "limit=12&page=1&search=soap", last.Query)
}

func TestResource_ItemRoutes(t *testing.T) {
	t.Parallel()

	c, _, rec := newServer(t, http.StatusOK, `{"message":"ok","data":{"id":3,"name":"Beauty"}}`)
	cats := NewCategories(c)
	ctx := context.Background()

	got, err := cats.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Beauty", got.Data.Name)
	assert.Equal(t, seen{Method: http.MethodGet, Path: "/categories/3"}, rec.last(t))

	_, err = cats.Create(ctx, models.CategoryInput{Name: "Beauty"})
	require.NoError(t, err)
	last := rec.last(t)
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/categories/", last.Path)
	assert.JSONEq(t, `{"name":"Beauty"}`, last.Body)

	_, err = cats.Update(ctx, 3, models.CategoryInput{Name: "Care"})
	require.NoError(t, err)
	last = rec.last(t)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/categories/3", last.Path)

	_, err = cats.Delete(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.last(t).Method)
}

func TestCarts_UpdateSendsItems(t *testing.T) {
	t.Parallel()

	c, _, rec := newServer(t, http.StatusOK, `{"message":"ok","data":{"id":1,"total_amount":30,"cart_items":[{"product_id":5,"quantity":3,"subtotal":30}]}}`)
	got, err := NewCarts(c).Update(context.Background(), 1, models.CartInput{
		CartItems: []models.CartItemInput{{ProductID: 5, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, got.Data.TotalAmount)
	last := rec.last(t)
	assert.Equal(t, "/carts/1", last.Path)
	assert.JSONEq(t, `{"cart_items":[{"product_id":5,"quantity":3}]}`, last.Body)
}

func TestResource_NotFound(t *testing.T) {
	t.Parallel()

	c, _, _ := newServer(t, http.StatusNotFound, `{"detail":"Product not found"}`)
	_, err := NewProducts(c).Get(context.Background(), 99)
	require.ErrorIs(t, err, apiclient.ErrNotFound)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestAccount_Me(t *testing.T) {
	t.Parallel()

	c, store, rec := newServer(t, http.StatusOK, `{"message":"ok","data":{"id":7,"username":"jo","carts":[{"id":4}]}}`)
	require.NoError(t, store.SetAccessToken(context.Background(), "a1"))
	acc := NewAccount(c)

	got, err := acc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jo", got.Data.Username)
	require.Len(t, got.Data.Carts, 1)
	assert.Equal(t, 4, got.Data.Carts[0].ID)
	assert.Equal(t, "/me/", rec.last(t).Path)
	assert.Equal(t, "Bearer a1", rec.last(t).Auth)

	name := "Jo Doe"
	_, err = acc.UpdateMe(context.Background(), models.AccountUpdateInput{FullName: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name":"Jo Doe"}`, rec.last(t).Body)

	_, err = acc.DeleteMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.last(t).Method)
}

func TestAuth_SignInPersistsTokens(t *testing.T) {
	t.Parallel()

	c, store, rec := newServer(t, http.StatusOK, `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`)
	tok, err := NewAuth(c).SignIn(context.Background(), models.SignInInput{Username: "jo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, apiclient.Tokens{Access: "a1", Refresh: "r1"}, tok)

	last := rec.last(t)
	assert.Equal(t, "/auth/login", last.Path)
	assert.Equal(t, "password=secret&username=jo", last.Body)

	access, err := store.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1", access)
	refresh, err := store.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r1", refresh)
}

func TestAuth_SignInRejectedDoesNotRefresh(t *testing.T) {
	t.Parallel()

	c, store, rec := newServer(t, http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`)
	require.NoError(t, store.SetRefreshToken(context.Background(), "old"))

	_, err := NewAuth(c).SignIn(context.Background(), models.SignInInput{Username: "jo", Password: "bad"})
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.NotErrorIs(t, err, apiclient.ErrSessionExpired)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.reqs, 1)
}

func TestAuth_SignUpAndSignOut(t *testing.T) {
	t.Parallel()

	c, store, rec := newServer(t, http.StatusCreated, `{"message":"created","data":{"id":9,"username":"jo"}}`)
	ctx := context.Background()
	auth := NewAuth(c)

	in := models.SignUpInput{FullName: "Jo", Username: "jo", Email: "jo@example.com", Password: "secret"}
	got, err := auth.SignUp(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Data.ID)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.last(t).Body), &body))
	assert.Equal(t, "jo@example.com", body["email"])

	require.NoError(t, store.SetAccessToken(ctx, "a1"))
	require.NoError(t, store.SetRefreshToken(ctx, "r1"))
	require.NoError(t, auth.SignOut(ctx))
	access, _ := store.AccessToken(ctx)
	assert.Empty(t, access)
}

func TestAuth_RefreshWithoutToken(t *testing.T) {
	t.Parallel()

	c, _, _ := newServer(t, http.StatusOK, `"fresh"`)
	_, err := NewAuth(c).Refresh(context.Background())
	require.ErrorIs(t, err, ErrNoRefreshToken)
}
