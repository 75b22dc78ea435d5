package root

import (
	"context"
	"fmt"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/cron"
	"github.com/spf13/cobra"
)

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the submission reminder job once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				scheduler := cron.NewScheduler()
				a.Reminders.RegisterJobs(scheduler)
				if err := scheduler.RunOnce(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "reminder job finished")
				return nil
			})
		},
	}
}
