package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Manage the comparison list (max 3 products, one category)",
}

var compareAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the comparison list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceProduct, "id="+args[0],
			func(ctx context.Context) (domain.Product, error) {
				return app.API.GetProduct(ctx, args[0])
			})
		if err != nil {
			return err
		}

		if err := app.Compare.Add(product); err != nil {
			return err
		}
		fmt.Printf("comparing %d product(s)\n", app.Compare.Len())
		return nil
	},
}

var compareRemoveCmd = &cobra.Command{
	Use:   "rm [product-id]",
	Short: "Remove a product from the comparison list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Compare.Remove(args[0])
		fmt.Printf("comparing %d product(s)\n", app.Compare.Len())
		return nil
	},
}

var compareClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the comparison list",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Compare.Clear()
		fmt.Println("comparison list cleared")
		return nil
	},
}

// compareView pairs each compared product with its recent reviews.
type compareView struct {
	Product domain.Product  `json:"product"`
	Reviews []domain.Review `json:"reviews"`
}

var compareShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the comparison side by side",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.Compare.Snapshot()
		if len(snap.Entries) == 0 {
			fmt.Println("comparison list is empty")
			return nil
		}

		// Hydrate reviews for every entry concurrently.
		views := make([]compareView, len(snap.Entries))
		g, ctx := errgroup.WithContext(cmd.Context())
		for i, p := range snap.Entries {
			i, p := i, p
			g.Go(func() error {
				page, err := query.Fetch(ctx, app.Queries, query.ResourceReview, "productId="+p.ID,
					func(ctx context.Context) (api.Page[domain.Review], error) {
						return app.API.ProductReviews(ctx, p.ID, api.ReviewListParams{Limit: 3})
					})
				if err != nil {
					return err
				}
				views[i] = compareView{Product: p, Reviews: page.Data}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(views)
		}

		w := newTable()
		fmt.Fprintln(w, "\tPRICE\tDISCOUNT\tSTOCK\tRATING\tREVIEWS")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%.2f\t%.0f%%\t%d\t%.1f\t%d\n",
				v.Product.Name, v.Product.DiscountedPrice(), v.Product.Discount,
				v.Product.Quantity, v.Product.Rating, len(v.Reviews))
		}
		w.Flush()
		return nil
	},
}

func init() {
	compareCmd.AddCommand(compareAddCmd, compareRemoveCmd, compareClearCmd, compareShowCmd)
	rootCmd.AddCommand(compareCmd)
}
