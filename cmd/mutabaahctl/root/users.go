package root

import (
	"context"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(newUsersAddCmd(), newUsersResetPasswordCmd())
	return cmd
}

func newUsersAddCmd() *cobra.Command {
	var (
		req        user.CreateUserRequest
		role       string
		employeeID string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = user.Role(role)
			if employeeID != "" {
				req.EmployeeID = &employeeID
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				created, err := a.Auth.CreateAccount(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", created.Email, created.Role, created.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "admin or employee")
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee id to link")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersResetPasswordCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace an account's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Auth.ResetPassword(ctx, email, password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "password updated for", email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
