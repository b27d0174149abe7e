package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/scrimmage-club/pug-bot/bot"
	"github.com/scrimmage-club/pug-bot/config"
	"github.com/scrimmage-club/pug-bot/db/bundb"
	"github.com/scrimmage-club/pug-bot/observability"
)

// App composes the store, the gateway bot, and the ops server.
type App struct {
	Cfg       *config.Config
	Store     *bundb.StoreService
	Bot       *bot.Bot
	opsServer *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration. Opening the store is the one point where the schema is
// applied; a schema failure aborts startup here.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := bundb.NewStoreService(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	b, err := bot.New(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	a := &App{Cfg: cfg, Store: store, Bot: b}
	if addr := cfg.Observability.MetricsAddress; addr != "" {
		a.opsServer = observability.NewServer(addr)
	}
	return a, nil
}

// Run starts the ops server and the gateway, then blocks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.opsServer != nil {
		go func() {
			slog.Info("ops server listening", "addr", a.opsServer.Addr)
			if err := a.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("ops server failed", "error", err)
			}
		}()
	}

	if err := a.Bot.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// Close shuts the collaborators down in reverse start order.
func (a *App) Close(ctx context.Context) {
	if err := a.Bot.Stop(); err != nil {
		slog.Error("failed to stop bot", "error", err)
	}
	if a.opsServer != nil {
		if err := a.opsServer.Shutdown(ctx); err != nil {
			slog.Error("failed to stop ops server", "error", err)
		}
	}
	if err := a.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
}
