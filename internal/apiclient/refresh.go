package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
)

type TokenStore interface {
	TokenSource
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SetRefreshToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Tokens is what a sign-in or refresh exchange hands back.
type Tokens struct {
	Access  string
	Refresh string
}

// refreshTimeout bounds an exchange, which runs detached from the caller's
// context.
const refreshTimeout = 15 * time.Second

type RefreshFunc func(ctx context.Context, refreshToken string) (Tokens, error)

type retriedKey struct{}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

// Retried reports whether ctx belongs to the one retry a call is allowed after
// a token refresh.
func Retried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

type refresher struct {
	next      Doer
	store     TokenStore
	exchange  RefreshFunc
	onExpired func(ctx context.Context)
	group     *singleflight.Group
}

// WithRefresh retries a call once after exchanging the refresh token when the
// backend answers 401. A call that already went through the cycle is passed
// back untouched, so a run of 401s costs one refresh and one retry at most.
func WithRefresh(store TokenStore, exchange RefreshFunc, onExpired func(ctx context.Context)) Middleware {
	group := &singleflight.Group{}
	return func(next Doer) Doer {
		return &refresher{
			next:      next,
			store:     store,
			exchange:  exchange,
			onExpired: onExpired,
			group:     group,
		}
	}
}

func (m *refresher) Do(ctx context.Context, r *Request) (*Response, error) {
	resp, err := m.next.Do(ctx, r)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || r.SkipAuth || Retried(ctx) {
		return resp, err
	}

	l := logging.FromContext(ctx).With("component", "apiclient.refresh", "path", r.Path)
	ctx = markRetried(ctx)

	refreshToken, err := m.store.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		l.Warn("session_expired", "status", 401, "reason", "no refresh token")
		m.expire(ctx)
		return nil, fmt.Errorf("%w: no refresh token", ErrSessionExpired)
	}

	// Shared by every caller holding this refresh token; detached from the one
	// that started it.
	if _, err, _ := m.group.Do(refreshToken, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return nil, m.rotate(rctx, refreshToken)
	}); err != nil {
		l.Warn("session_expired", "status", 401, "reason", "refresh failed", "error", err)
		if cErr := m.store.Clear(ctx); cErr != nil {
			l.Error("clear_tokens_error", "error", cErr)
		}
		m.expire(ctx)
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	l.Info("token_refreshed")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.next.Do(ctx, r)
}

func (m *refresher) rotate(ctx context.Context, refreshToken string) error {
	tok, err := m.exchange(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := m.store.SetAccessToken(ctx, tok.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if tok.Refresh != "" {
		if err := m.store.SetRefreshToken(ctx, tok.Refresh); err != nil {
			return fmt.Errorf("store refresh token: %w", err)
		}
	}
	return nil
}

func (m *refresher) expire(ctx context.Context) {
	if m.onExpired != nil {
		m.onExpired(ctx)
	}
}
