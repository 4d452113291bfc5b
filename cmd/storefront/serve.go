package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/httpserver"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/middleware"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/validate"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront pages as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			return serve(a, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR)")
	return cmd
}

func serve(a *app, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.Common(a.log, a.tokens.AccessToken)...)

	s := httpserver.Register(e, &httpserver.Deps{
		Hooks:         a.hooks,
		Notifications: a.notes,
		Ready:         a.ready,
	})
	defer s.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server_start", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.log.Error("server_error", "error", err)
		return err
	case <-quit:
	}

	a.log.Info("server_shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.log.Error("server_shutdown", "status", "failed", "error", err)
	}
	a.hooks.Cache().Wait()
	a.log.Info("shutdown_complete")
	return nil
}
