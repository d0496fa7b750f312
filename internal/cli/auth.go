package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		ctx := cmd.Context()

		sess, err := app.API.Login(ctx, api.Credentials{Email: args[0], Password: password})
		if err != nil {
			return err
		}
		if err := app.Session.SaveToken(ctx, sess.Token); err != nil {
			return err
		}
		if err := app.Session.SaveUser(ctx, sess.User); err != nil {
			return err
		}

		fmt.Printf("signed in as %s (%s)\n", sess.User.Name, sess.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Server-side invalidation is best effort; the local session is
		// wiped regardless.
		if err := app.API.Logout(cmd.Context()); err != nil {
			app.Log.Warn("server logout failed", "error", err)
		}
		if err := app.Session.Reset(cmd.Context()); err != nil {
			return err
		}
		app.Cart.Clear()
		app.Compare.Clear()
		fmt.Println("signed out")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [email]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		vendor, _ := cmd.Flags().GetBool("vendor")
		ctx := cmd.Context()

		role := domain.RoleCustomer
		if vendor {
			role = domain.RoleVendor
		}
		sess, err := app.API.Signup(ctx, api.SignupInput{
			Name: name, Email: args[0], Password: password, Role: role,
		})
		if err != nil {
			return err
		}
		if err := app.Session.SaveToken(ctx, sess.Token); err != nil {
			return err
		}
		if err := app.Session.SaveUser(ctx, sess.User); err != nil {
			return err
		}

		fmt.Printf("account created for %s\n", sess.User.Email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, ok, err := app.Session.User(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("not signed in")
			return nil
		}
		if outputFormat(cmd) == "json" {
			return printJSON(u)
		}
		fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
		return nil
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, _ := cmd.Flags().GetString("old")
		newPassword, _ := cmd.Flags().GetString("new")

		if err := app.API.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
			return err
		}
		fmt.Println("password changed")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "Account password")
	signupCmd.Flags().String("name", "", "Display name")
	signupCmd.Flags().String("password", "", "Account password")
	signupCmd.Flags().Bool("vendor", false, "Register as a vendor")
	changePasswordCmd.Flags().String("old", "", "Current password")
	changePasswordCmd.Flags().String("new", "", "New password")

	rootCmd.AddCommand(loginCmd, logoutCmd, signupCmd, whoamiCmd, changePasswordCmd)
}
