package root

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/spf13/cobra"
)

func newEmployeesCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List active employees, or those still owing a report for --month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				list, err := a.EmployeeRepo.ListActive(ctx)
				if month != "" {
					list, err = a.EmployeeRepo.ListAwaitingSubmission(ctx, month)
				}
				if err != nil {
					return err
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(cmd.OutOrStdout())
				tw.AppendHeader(table.Row{"ID", "Code", "Name", "Unit", "Mentor", "Activated"})
				for _, e := range list {
					tw.AppendRow(table.Row{e.ID, e.EmployeeCode, e.FullName, deref(e.Unit), deref(e.MentorID), strings.Join(e.ActivatedMonths, ",")})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "awaiting", "", "only employees that have not submitted this month (YYYY-MM)")
	return cmd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
