package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer marketplace users (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.UserListParams{}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")
		role, _ := cmd.Flags().GetString("role")
		params.Role = domain.UserRole(role)

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceUser, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.User], error) {
				return app.API.ListUsers(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printUsers(page)
		return nil
	},
}

var usersStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Change a user's status (ACTIVE, BLOCKED, SUSPENDED)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.User, error) {
				return app.API.ChangeUserStatus(ctx, args[0], domain.UserStatus(args[1]))
			}, query.ResourceUser)
		if err != nil {
			return err
		}
		fmt.Printf("user %s status=%s\n", u.ID, u.Status)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, app.API.DeleteUser(ctx, args[0])
			}, query.ResourceUser)
		if err != nil {
			return err
		}
		fmt.Printf("deleted user %s\n", args[0])
		return nil
	},
}

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List vendor accounts (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := api.UserListParams{Role: domain.RoleVendor}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")

		page, err := query.Fetch(cmd.Context(), app.Queries, query.ResourceUser, params.CacheKey(),
			func(ctx context.Context) (api.Page[domain.User], error) {
				return app.API.ListUsers(ctx, params)
			})
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return printJSON(page)
		}
		printUsers(page)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			u, err := app.API.Me(cmd.Context())
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return printJSON(u)
			}
			fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
			return nil
		}

		u, err := query.Mutate(cmd.Context(), app.Queries,
			func(ctx context.Context) (domain.User, error) {
				return app.API.UpdateMe(ctx, api.UserInput{Name: name})
			}, query.ResourceUser)
		if err != nil {
			return err
		}
		if err := app.Session.SaveUser(cmd.Context(), u); err != nil {
			return err
		}
		fmt.Printf("profile updated: %s\n", u.Name)
		return nil
	},
}

func init() {
	usersListCmd.Flags().Int("page", 1, "Page number")
	usersListCmd.Flags().Int("limit", 20, "Users per page")
	usersListCmd.Flags().String("role", "", "Filter by role")
	profileCmd.Flags().String("name", "", "New display name")
	vendorsCmd.Flags().Int("page", 1, "Page number")
	vendorsCmd.Flags().Int("limit", 20, "Vendors per page")

	usersCmd.AddCommand(usersListCmd, usersStatusCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd, vendorsCmd, profileCmd)
}
