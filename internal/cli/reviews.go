package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Browse and write product reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list [product-id]",
	Short: "List reviews, optionally for one product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.ReviewListParams{}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")

		var page api.Page[domain.Review]
		var err error
		if len(args) == 1 {
			page, err = query.Fetch(cmd.Context(), app.Queries, query.ResourceReview, "productId="+args[0]+"&"+params.CacheKey(),
				func(ctx context.Context) (api.Page[domain.Review], error) {
					return app.API.ProductReviews(ctx, args[0], params)
				})
		} else {
			page, err = query.Fetch(cmd.Context(), app.Queries, query.ResourceReview, params.CacheKey(),
				func(ctx context.Context) (api.Page[domain.Review], error) {
					return app.API.ListReviews(ctx, params)
				})
		}
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printReviews(page)
		return nil
	},
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Review a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, _ := cmd.Flags().GetInt("rating")
		comment, _ := cmd.Flags().GetString("comment")
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		r, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.Review, error) {
				return app.API.CreateReview(ctx, args[0], api.ReviewInput{Rating: rating, Comment: comment})
			}, query.ResourceReview, query.ResourceProduct)
		if err != nil {
			return err
		}

		fmt.Printf("review %s created\n", r.ID)
		return nil
	},
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.API.DeleteReview(ctx, args[0])
			}, query.ResourceReview, query.ResourceProduct)
		if err != nil {
			return err
		}

		fmt.Printf("deleted review %s\n", args[0])
		return nil
	},
}

func init() {
	reviewsListCmd.Flags().Int("page", 1, "Page number")
	reviewsListCmd.Flags().Int("limit", 20, "Reviews per page")
	reviewsAddCmd.Flags().Int("rating", 5, "Rating 1-5")
	reviewsAddCmd.Flags().String("comment", "", "Review text")

	reviewsCmd.AddCommand(reviewsListCmd, reviewsAddCmd, reviewsDeleteCmd)
	rootCmd.AddCommand(reviewsCmd)
}
