package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/config"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/events"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/hooks"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/notify"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/storage"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/tokens"
)

// app is everything a command needs, wired from the environment.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	kv     storage.KV
	tokens *tokens.Store
	events events.Publisher
	notes  *notify.Buffer
	hooks  *hooks.Hooks
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	kv, err := storage.Open(ctx, cfg.StorageDSN)
	if err != nil {
		return nil, err
	}
	store := tokens.NewStore(kv)

	a := &app{
		cfg:    cfg,
		log:    logger,
		kv:     kv,
		tokens: store,
		events: events.New(cfg.KafkaBrokers, cfg.EventsTopic),
		notes:  notify.NewBuffer(0),
	}

	client := apiclient.New(cfg.APIURL, store,
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithSessionExpired(func(ctx context.Context) { a.hooks.SessionExpired(ctx) }),
		apiclient.WithMiddleware(apiclient.Logger()),
	)

	a.hooks = hooks.New(hooks.Deps{
		Notifier:       notify.Multi{notify.Log{}, a.notes},
		Events:         a.events,
		Tuning:         cfg.Tuning,
		FallbackCartID: cfg.CartID,
	}.Gateways(client))

	logger.Info("storefront_configured",
		"api_url", cfg.APIURL,
		"kafka", len(cfg.KafkaBrokers) > 0,
	)
	return a, nil
}

// ready reports whether the token storage answers.
func (a *app) ready(ctx context.Context) error {
	_, _, err := a.kv.Get(ctx, "auth_token")
	return err
}

func (a *app) close() {
	if err := a.events.Close(); err != nil {
		a.log.Error("events_close", "error", err)
	}
	if c, ok := a.kv.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Error("storage_close", "error", err)
		}
	}
}
