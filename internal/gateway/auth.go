package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
)

var ErrNoRefreshToken = errors.New("no refresh token")

type Auth struct {
	client *apiclient.Client
}

func NewAuth(c *apiclient.Client) *Auth { return &Auth{client: c} }

func (a *Auth) SignUp(ctx context.Context, in models.SignUpInput) (models.Envelope[models.User], error) {
	var out models.Envelope[models.User]
	err := a.client.Do(ctx, &apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/auth/signup",
		Body:     in,
		SkipAuth: true,
	}, &out)
	return out, err
}

// SignIn posts form-encoded credentials and persists the returned tokens
// before handing them back.
func (a *Auth) SignIn(ctx context.Context, in models.SignInInput) (apiclient.Tokens, error) {
	resp, err := a.client.DoRaw(ctx, &apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		Form:     url.Values{"username": {in.Username}, "password": {in.Password}},
		SkipAuth: true,
	})
	if err != nil {
		return apiclient.Tokens{}, err
	}

	tok, err := apiclient.DecodeTokens(resp.Body)
	if err != nil {
		return apiclient.Tokens{}, err
	}
	if err := a.persist(ctx, tok); err != nil {
		return apiclient.Tokens{}, err
	}
	return tok, nil
}

// Refresh rotates the access token using the stored refresh token.
func (a *Auth) Refresh(ctx context.Context) (apiclient.Tokens, error) {
	rt, err := a.client.Tokens().RefreshToken(ctx)
	if err != nil {
		return apiclient.Tokens{}, err
	}
	if rt == "" {
		return apiclient.Tokens{}, ErrNoRefreshToken
	}

	tok, err := a.client.Refresh(ctx, rt)
	if err != nil {
		return apiclient.Tokens{}, err
	}
	if err := a.persist(ctx, tok); err != nil {
		return apiclient.Tokens{}, err
	}
	return tok, nil
}

// SignOut forgets both tokens. The backend keeps no session to end.
func (a *Auth) SignOut(ctx context.Context) error {
	return a.client.Tokens().Clear(ctx)
}

func (a *Auth) persist(ctx context.Context, tok apiclient.Tokens) error {
	store := a.client.Tokens()
	if err := store.SetAccessToken(ctx, tok.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if tok.Refresh != "" {
		if err := store.SetRefreshToken(ctx, tok.Refresh); err != nil {
			return fmt.Errorf("store refresh token: %w", err)
		}
	}
	return nil
}
