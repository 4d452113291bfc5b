package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

func (s *Storefront) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signin")

	var form validate.SignInForm
	if err := c.Bind(&form); err != nil {
		return badRequest(l, "signin_failed", "invalid body", err)
	}

	r, err := s.auth.SignIn(ctx, form)
	if err != nil {
		return fail(l, "signin_failed", err)
	}
	l.Info("signin_success", "username", form.Username)
	return c.JSON(http.StatusOK, r)
}

func (s *Storefront) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var form validate.SignUpForm
	if err := c.Bind(&form); err != nil {
		return badRequest(l, "signup_failed", "invalid body", err)
	}

	r, err := s.auth.SignUp(ctx, form)
	if err != nil {
		return fail(l, "signup_failed", err)
	}
	l.Info("signup_success", "username", form.Username)
	return c.JSON(http.StatusCreated, r)
}

func (s *Storefront) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signout")

	r, err := s.auth.SignOut(ctx)
	if err != nil {
		return fail(l, "signout_failed", err)
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Storefront) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	v, err := s.profile.Load(ctx)
	if err != nil {
		return fail(l, "profile_get_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	var form validate.ProfileForm
	if err := c.Bind(&form); err != nil {
		return badRequest(l, "profile_update_failed", "invalid body", err)
	}

	v, err := s.profile.Update(ctx, form)
	if err != nil {
		return fail(l, "profile_update_failed", err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Storefront) DeleteProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.delete")

	r, err := s.profile.Delete(ctx)
	if err != nil {
		return fail(l, "profile_delete_failed", err)
	}
	return c.JSON(http.StatusOK, r)
}

// Notifications returns and forgets the messages raised since the last call.
func (s *Storefront) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, s.notes.Drain())
}
