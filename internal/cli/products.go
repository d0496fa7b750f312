package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.ProductListParams{}
		params.Category, _ = cmd.Flags().GetString("category")
		params.Search, _ = cmd.Flags().GetString("search")
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceProduct, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.Product], error) {
				return app.API.ListProducts(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printProducts(page)
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceProduct, "id="+args[0],
			func(ctx context.Context) (domain.Product, error) {
				return app.API.GetProduct(ctx, args[0])
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(p)
		}
		fmt.Printf("%s - %s\n", p.ID, p.Name)
		fmt.Printf("price: %.2f (%.0f%% off, pay %.2f)\n", p.Price, p.Discount, p.DiscountedPrice())
		fmt.Printf("stock: %d  shop: %s  category: %s\n", p.Quantity, p.ShopID, p.Category.Name)
		if p.Description != "" {
			fmt.Println(p.Description)
		}
		return nil
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a product (vendor)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := api.ProductInput{Name: args[0]}
		in.Description, _ = cmd.Flags().GetString("description")
		in.Price, _ = cmd.Flags().GetFloat64("price")
		in.Discount, _ = cmd.Flags().GetFloat64("discount")
		in.Quantity, _ = cmd.Flags().GetInt("quantity")
		in.CategoryID, _ = cmd.Flags().GetString("category")

		p, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.Product, error) {
				return app.API.CreateProduct(ctx, in)
			}, query.ResourceProduct)
		if err != nil {
			return err
		}

		fmt.Printf("created product %s\n", p.ID)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a product (vendor)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.API.DeleteProduct(ctx, args[0])
			}, query.ResourceProduct)
		if err != nil {
			return err
		}

		fmt.Printf("deleted product %s\n", args[0])
		return nil
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search products by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.ProductListParams{Search: args[0]}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceProduct, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.Product], error) {
				return app.API.ListProducts(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printProducts(page)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceProduct, "categories",
			func(ctx context.Context) ([]domain.Category, error) {
				return app.API.ListCategories(ctx)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(cats)
		}
		for _, c := range cats {
			fmt.Printf("%s\t%s\n", c.ID, c.Name)
		}
		return nil
	},
}

func init() {
	productsListCmd.Flags().String("category", "", "Filter by category id")
	productsListCmd.Flags().String("search", "", "Search term")
	productsListCmd.Flags().Int("page", 1, "Page number")
	productsListCmd.Flags().Int("limit", 20, "Products per page")

	productsCreateCmd.Flags().String("description", "", "Product description")
	productsCreateCmd.Flags().Float64("price", 0, "Unit price")
	productsCreateCmd.Flags().Float64("discount", 0, "Discount percent")
	productsCreateCmd.Flags().Int("quantity", 0, "Stock quantity")
	productsCreateCmd.Flags().String("category", "", "Category id")

	productsSearchCmd.Flags().Int("page", 1, "Page number")
	productsSearchCmd.Flags().Int("limit", 20, "Products per page")

	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsSearchCmd, productsCreateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd, categoriesCmd)
}
