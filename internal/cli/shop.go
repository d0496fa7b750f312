package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "View and manage shops",
}

var shopShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceShop, "id="+args[0],
			func(ctx context.Context) (domain.Shop, error) {
				return app.API.GetShop(ctx, args[0])
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(s)
		}
		fmt.Printf("%s - %s (followers: %d)\n", s.ID, s.Name, s.FollowerCount)
		if s.Description != "" {
			fmt.Println(s.Description)
		}
		return nil
	},
}

var shopProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your shop (vendor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := app.API.ShopProfile(cmd.Context())
		if err != nil {
			return err
		}
		if outputFormat(cmd) == "json" {
			return printJSON(s)
		}
		fmt.Printf("%s - %s\n", s.ID, s.Name)
		return nil
	},
}

var shopCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create your shop (vendor)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		s, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.Shop, error) {
				return app.API.CreateShop(ctx, api.ShopInput{Name: args[0], Description: description})
			}, query.ResourceShop)
		if err != nil {
			return err
		}

		fmt.Printf("created shop %s\n", s.ID)
		return nil
	},
}

var shopFollowCmd = &cobra.Command{
	Use:   "follow [id]",
	Short: "Follow a shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.API.FollowShop(ctx, args[0])
			}, query.ResourceShop)
		if err != nil {
			return err
		}
		fmt.Printf("following shop %s\n", args[0])
		return nil
	},
}

var shopBlacklistCmd = &cobra.Command{
	Use:   "blacklist [id]",
	Short: "Toggle a shop's blacklist flag (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.Shop, error) {
				return app.API.BlacklistShop(ctx, args[0])
			}, query.ResourceShop, query.ResourceProduct)
		if err != nil {
			return err
		}
		fmt.Printf("shop %s blacklisted=%v\n", s.ID, s.IsBlacklisted)
		return nil
	},
}

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "Manage shop coupons (vendor)",
}

var couponsListCmd = &cobra.Command{
	Use:   "list [shop-id]",
	Short: "List coupons for a shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coupons, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceCoupon, "shopId="+args[0],
			func(ctx context.Context) ([]domain.Coupon, error) {
				return app.API.ListCoupons(ctx, args[0])
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(coupons)
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tCODE\tDISCOUNT\tEXPIRES")
		for _, c := range coupons {
			expires := "-"
			if !c.ExpiresAt.IsZero() {
				expires = c.ExpiresAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\n", c.ID, c.Code, c.Discount, expires)
		}
		w.Flush()
		return nil
	},
}

var couponsCreateCmd = &cobra.Command{
	Use:   "create [code]",
	Short: "Create a coupon for your shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		discount, _ := cmd.Flags().GetFloat64("discount")

		c, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.Coupon, error) {
				return app.API.CreateCoupon(ctx, api.CouponInput{Code: args[0], Discount: discount})
			}, query.ResourceCoupon)
		if err != nil {
			return err
		}

		fmt.Printf("created coupon %s (%s)\n", c.ID, c.Code)
		return nil
	},
}

var couponsDeleteCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a coupon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.API.DeleteCoupon(ctx, args[0])
			}, query.ResourceCoupon)
		if err != nil {
			return err
		}
		fmt.Printf("deleted coupon %s\n", args[0])
		return nil
	},
}

func init() {
	shopCreateCmd.Flags().String("description", "", "Shop description")
	couponsCreateCmd.Flags().Float64("discount", 0, "Discount percent")

	shopCmd.AddCommand(shopShowCmd, shopProfileCmd, shopCreateCmd, shopFollowCmd, shopBlacklistCmd)
	couponsCmd.AddCommand(couponsListCmd, couponsCreateCmd, couponsDeleteCmd)
	rootCmd.AddCommand(shopCmd, couponsCmd)
}
