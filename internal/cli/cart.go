package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/cart"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the session cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.Cart.Snapshot()
		coupon, err := app.Session.Coupon(cmd.Context())
		if err != nil {
			app.Log.Warn("could not read applied coupon", "error", err)
		}

		if outputFormat(cmd) == "json" {
			return printJSON(struct {
				Cart   domain.Cart    `json:"cart"`
				Coupon *domain.Coupon `json:"coupon,omitempty"`
			}{snap, coupon})
		}
		printCart(snap, coupon, "")
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, _ := cmd.Flags().GetInt("quantity")
		replace, _ := cmd.Flags().GetBool("replace")
		ctx := cmd.Context()

		product, err := query.Fetch(ctx, app.Queries, query.ResourceProduct, "id="+args[0],
			func(ctx context.Context) (domain.Product, error) {
				return app.API.GetProduct(ctx, args[0])
			})
		if err != nil {
			return err
		}

		res, err := addOrReplace(app, product, quantity, replace)
		if errors.Is(err, cart.ErrVendorMismatch) {
			// The business rule: one shop per cart. The user decides
			// whether the old cart gets discarded.
			if !confirm("cart holds items from another shop; discard it and add this product?") {
				fmt.Println("kept the existing cart")
				return nil
			}
			res, err = app.Cart.Replace(product, quantity)
		}
		if err != nil {
			return err
		}

		app.persistCart(ctx)
		warning := ""
		if res.Clamped {
			warning = fmt.Sprintf("only %d available", product.Quantity)
		}
		coupon, _ := app.Session.Coupon(ctx)
		printCart(res.Cart, coupon, warning)
		return nil
	},
}

func addOrReplace(a *App, p domain.Product, quantity int, replace bool) (cart.ChangeResult, error) {
	if replace {
		return a.Cart.Replace(p, quantity)
	}
	return a.Cart.Add(p, quantity)
}

var cartReplaceCmd = &cobra.Command{
	Use:   "replace [product-id]",
	Short: "Discard the cart and start over with this product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, _ := cmd.Flags().GetInt("quantity")
		ctx := cmd.Context()

		product, err := query.Fetch(ctx, app.Queries, query.ResourceProduct, "id="+args[0],
			func(ctx context.Context) (domain.Product, error) {
				return app.API.GetProduct(ctx, args[0])
			})
		if err != nil {
			return err
		}

		res, err := app.Cart.Replace(product, quantity)
		if err != nil {
			return err
		}
		app.persistCart(ctx)

		warning := ""
		if res.Clamped {
			warning = fmt.Sprintf("only %d available", product.Quantity)
		}
		coupon, _ := app.Session.Coupon(ctx)
		printCart(res.Cart, coupon, warning)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "rm [product-id]",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.Cart.Remove(args[0])
		if err != nil {
			return err
		}
		app.persistCart(cmd.Context())
		coupon, _ := app.Session.Coupon(cmd.Context())
		printCart(c, coupon, "")
		return nil
	},
}

var cartSetQtyCmd = &cobra.Command{
	Use:   "set-qty [product-id] [quantity]",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var quantity int
		if _, err := fmt.Sscanf(args[1], "%d", &quantity); err != nil {
			return fmt.Errorf("quantity must be an integer: %w", err)
		}

		res, err := app.Cart.UpdateQuantity(args[0], quantity)
		if err != nil {
			return err
		}
		app.persistCart(cmd.Context())

		warning := ""
		if res.Clamped {
			warning = fmt.Sprintf("only %d available", res.Applied)
		}
		coupon, _ := app.Session.Coupon(cmd.Context())
		printCart(res.Cart, coupon, warning)
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Cart.Clear()
		app.persistCart(cmd.Context())
		if err := app.Session.ClearCoupon(cmd.Context()); err != nil {
			app.Log.Warn("could not clear coupon", "error", err)
		}
		fmt.Println("cart cleared")
		return nil
	},
}

var cartApplyCouponCmd = &cobra.Command{
	Use:   "apply-coupon [code]",
	Short: "Apply a coupon code to the cart's shop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		snap := app.Cart.Snapshot()
		if snap.IsEmpty() {
			return fmt.Errorf("cart is empty, nothing to apply a coupon to")
		}

		coupon, err := query.Mutate(ctx, app.Queries,
			func(ctx context.Context) (domain.Coupon, error) {
				return app.API.ApplyCoupon(ctx, args[0], snap.ShopID)
			}, query.ResourceCoupon, query.ResourceCart)
		if err != nil {
			return err
		}
		if err := app.Session.SaveCoupon(ctx, coupon); err != nil {
			return err
		}

		fmt.Printf("applied %s: %.0f%% off, payable %.2f\n",
			coupon.Code, coupon.Discount, snap.PayableWith(&coupon))
		return nil
	},
}

// confirm asks a yes/no question on stdin and defaults to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	cartAddCmd.Flags().Int("quantity", 1, "Quantity to add")
	cartAddCmd.Flags().Bool("replace", false, "Discard a foreign-vendor cart without asking")
	cartReplaceCmd.Flags().Int("quantity", 1, "Quantity to add")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartReplaceCmd, cartRemoveCmd, cartSetQtyCmd, cartClearCmd, cartApplyCouponCmd)
	rootCmd.AddCommand(cartCmd)
}
