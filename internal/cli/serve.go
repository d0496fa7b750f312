package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/dashboard"
	"github.com/fjod/go_market/internal/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local dashboard HTTP server",
	Long:  "Serves a localhost JSON API over the session cart, comparison list and catalog cache. Stops on SIGINT/SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = app.Cfg.Dashboard.Addr
		}

		persist := func(ctx context.Context, c domain.Cart) {
			if err := app.Session.SaveCart(ctx, c); err != nil {
				app.Log.Warn("could not persist cart", "error", err)
			}
		}
		applied := func(ctx context.Context) *domain.Coupon {
			coupon, err := app.Session.Coupon(ctx)
			if err != nil {
				app.Log.Warn("could not load applied coupon", "error", err)
				return nil
			}
			return coupon
		}

		srv := dashboard.NewServer(addr, app.Log,
			dashboard.NewCartHandler(app.Cart, app.API, app.Queries, persist, applied),
			dashboard.NewCompareHandler(app.Compare, app.API, app.Queries),
			dashboard.NewCatalogHandler(app.API, app.Queries),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to MARKET_DASHBOARD_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
