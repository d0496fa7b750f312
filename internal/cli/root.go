// Package cli is the cobra command tree over the marketplace client: the
// storefront surface (browse, cart, compare), the vendor surface (shop,
// products, coupons) and the admin surface (users, vendors).
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/cart"
	"github.com/fjod/go_market/internal/compare"
	"github.com/fjod/go_market/internal/config"
	"github.com/fjod/go_market/internal/query"
	"github.com/fjod/go_market/internal/session"
)

// App carries everything a command needs. It is built once per invocation
// and torn down after the command finishes.
type App struct {
	Cfg     *config.Config
	Log     *slog.Logger
	Session *session.Store
	API     *api.Client
	Queries *query.Layer
	Cart    *cart.Store
	Compare *compare.Store

	stopCache func()
}

var app *App

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Marketplace client - storefront, vendor and admin tooling",
	Long:  "A command line client for the multi-vendor marketplace API: browse products, manage the session cart and comparison list, and run vendor/admin operations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = newApp(cmd.Context())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json")
}

func newApp(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	sess, err := session.Open(ctx, log, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client := api.NewClient(api.Config{
		BaseURL:    cfg.API.URL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		RateLimit:  rate.Limit(cfg.API.RateLimit),
		Burst:      cfg.API.Burst,
		Tokens:     sess,
		Logger:     log,
	})

	var store query.Store
	stopCache := func() {}
	if cfg.Cache.RedisAddr != "" {
		store = query.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr}))
	} else {
		mem := query.NewMemoryStore()
		store = mem
		stopCache = mem.Stop
	}

	a := &App{
		Cfg:       cfg,
		Log:       log,
		Session:   sess,
		API:       client,
		Queries:   query.NewLayer(store, cfg.Cache.TTL, log),
		Cart:      cart.NewStore(),
		Compare:   compare.NewStore(),
		stopCache: stopCache,
	}

	// Rehydrate the session cart saved by the previous invocation.
	if saved, errCart := sess.Cart(ctx); errCart != nil {
		log.Warn("could not restore saved cart", "error", errCart)
	} else {
		a.Cart.Restore(saved)
	}

	return a, nil
}

func (a *App) Close() {
	a.stopCache()
	if err := a.Session.Close(); err != nil {
		a.Log.Warn("closing session store", "error", err)
	}
}

// persistCart writes the cart snapshot back to the session store so the
// next invocation starts where this one left off.
func (a *App) persistCart(ctx context.Context) {
	if err := a.Session.SaveCart(ctx, a.Cart.Snapshot()); err != nil {
		a.Log.Warn("could not persist cart", "error", err)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	case "development":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}
