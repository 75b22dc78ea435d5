package root

import (
	"context"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/config"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(context.Background(), cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2})
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := db.Migrate(context.Background())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", name)
			}
			return nil
		},
	}
}
