package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

const (
	SignInPath   = "/auth/signin"
	ProductsPath = "/products"
	HomePath     = "/"
)

// ErrSignInRequired means the page can only be shown to a signed-in user.
var ErrSignInRequired = errors.New("sign in required")

type ProfileView struct {
	ID       int                  `json:"id"`
	Role     string               `json:"role"`
	IsActive bool                 `json:"is_active"`
	Form     validate.ProfileForm `json:"form"`
}

type ProfilePage struct {
	h *hooks.Hooks
}

func NewProfilePage(h *hooks.Hooks) *ProfilePage { return &ProfilePage{h: h} }

// Load fails with ErrSignInRequired on any error reading the account.
func (p *ProfilePage) Load(ctx context.Context) (ProfileView, error) {
	acc, err := p.h.Account(ctx)
	if err != nil {
		return ProfileView{}, fmt.Errorf("%w: %w", ErrSignInRequired, err)
	}
	return newProfileView(acc), nil
}

func newProfileView(acc models.Account) ProfileView {
	return ProfileView{
		ID:       acc.ID,
		Role:     acc.Role,
		IsActive: acc.IsActive,
		Form:     validate.ProfileForm{FullName: acc.FullName, Username: acc.Username, Email: acc.Email},
	}
}

func (p *ProfilePage) Update(ctx context.Context, form validate.ProfileForm) (ProfileView, error) {
	if err := validate.Struct(form); err != nil {
		return ProfileView{}, err
	}
	acc, err := p.h.UpdateAccount(ctx, models.AccountUpdateInput{
		FullName: &form.FullName,
		Username: &form.Username,
		Email:    &form.Email,
	})
	if err != nil {
		return ProfileView{}, err
	}
	return newProfileView(acc), nil
}

// Delete removes the account and returns where to go next.
func (p *ProfilePage) Delete(ctx context.Context) (Redirect, error) {
	if err := p.h.DeleteAccount(ctx); err != nil {
		return Redirect{}, err
	}
	return Redirect{To: HomePath}, nil
}

type Redirect struct {
	To string `json:"redirect"`
}

type AuthPage struct {
	h *hooks.Hooks
}

func NewAuthPage(h *hooks.Hooks) *AuthPage { return &AuthPage{h: h} }

func (p *AuthPage) SignIn(ctx context.Context, form validate.SignInForm) (Redirect, error) {
	if err := validate.Struct(form); err != nil {
		return Redirect{}, err
	}
	if err := p.h.SignIn(ctx, models.SignInInput{Username: form.Username, Password: form.Password}); err != nil {
		return Redirect{}, err
	}
	return Redirect{To: ProductsPath}, nil
}

// SignUp registers the user and sends them to sign in.
func (p *AuthPage) SignUp(ctx context.Context, form validate.SignUpForm) (Redirect, error) {
	if err := validate.Struct(form); err != nil {
		return Redirect{}, err
	}
	_, err := p.h.SignUp(ctx, models.SignUpInput{
		FullName: form.FullName,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return Redirect{}, err
	}
	return Redirect{To: SignInPath}, nil
}

func (p *AuthPage) SignOut(ctx context.Context) (Redirect, error) {
	if err := p.h.SignOut(ctx); err != nil {
		return Redirect{}, err
	}
	return Redirect{To: HomePath}, nil
}

// NeedsSignIn reports whether err should send the user to the sign-in page.
func NeedsSignIn(err error) bool {
	return errors.Is(err, ErrSignInRequired) || errors.Is(err, apiclient.ErrSessionExpired)
}
