package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List and inspect orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders (scoped by role server-side)",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.OrderListParams{}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceOrder, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.Order], error) {
				return app.API.ListOrders(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printOrders(page)
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceOrder, "id="+args[0],
			func(ctx context.Context) (domain.Order, error) {
				return app.API.GetOrder(ctx, args[0])
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(o)
		}
		fmt.Printf("order %s  status=%s  total=%.2f\n", o.ID, o.Status, o.TotalAmount)
		w := newTable()
		fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE")
		for _, item := range o.Items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", item.ProductID, item.ProductName, item.Quantity, item.Price)
		}
		w.Flush()
		return nil
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List payments",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.PaymentListParams{}
		params.Page, _ = cmd.Flags().GetInt("page")

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourcePayment, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.Payment], error) {
				return app.API.ListPayments(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printPayments(page)
		return nil
	},
}

func init() {
	ordersListCmd.Flags().Int("page", 1, "Page number")
	ordersListCmd.Flags().Int("limit", 20, "Orders per page")
	paymentsCmd.Flags().Int("page", 1, "Page number")

	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd)
	rootCmd.AddCommand(ordersCmd, paymentsCmd)
}
