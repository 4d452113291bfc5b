package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/pages"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

func signInCmd() *cobra.Command {
	var form validate.SignInForm
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and keep the session tokens in local storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := pages.NewAuthPage(a.hooks).SignIn(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", form.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Username, "username", "", "account username")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password")
	return cmd
}

func signUpCmd() *cobra.Command {
	var form validate.SignUpForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if _, err := pages.NewAuthPage(a.hooks).SignUp(cmd.Context(), form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account %s created, sign in to continue\n", form.Username)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FullName, "full-name", "", "full name")
	f.StringVar(&form.Username, "username", "", "username")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Password, "password", "", "password, at least 6 characters")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "password again (defaults to --password)")
	return cmd
}

func signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored session tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := pages.NewAuthPage(a.hooks).SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the claims of the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			access, err := a.tokens.AccessToken(cmd.Context())
			if err != nil {
				return err
			}
			if access == "" {
				return errors.New("not signed in")
			}
			claims, err := tokens.ParseClaims(access)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subject:  %s\n", claims.Subject)
			if claims.Username != "" {
				fmt.Fprintf(out, "username: %s\n", claims.Username)
			}
			if claims.Role != "" {
				fmt.Fprintf(out, "role:     %s\n", claims.Role)
			}
			if claims.ExpiresAt != nil {
				state := "valid"
				if claims.Expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(out, "expires:  %s (%s)\n", claims.ExpiresAt.Time.Format(time.RFC3339), state)
			}
			return nil
		},
	}
}
