package root

import (
	"context"
	"fmt"
	"os"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/config"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

// NewRootCmd builds the mutabaahctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mutabaahctl",
		Short:         "Operator tooling for the mutaba'ah backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.AddCommand(
		newMigrateCmd(),
		newCatalogCmd(),
		newWeeksCmd(),
		newEmployeesCmd(),
		newRecapCmd(),
		newRemindCmd(),
		newUsersCmd(),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp loads configuration and runs fn against a fully wired App.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closer := logger.Init(cfg.Log)
	defer closer.Close()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// operator is the identity CLI commands act under.
func operator(ctx context.Context) context.Context {
	return auth.ContextWithActor(ctx, auth.Actor{
		UserID: "mutabaahctl",
		Email:  "mutabaahctl@localhost",
		Role:   user.RoleAdmin,
	})
}
