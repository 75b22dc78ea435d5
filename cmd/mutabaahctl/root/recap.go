package root

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/app"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/document"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/spf13/cobra"
)

func newRecapCmd() *cobra.Command {
	var (
		employeeID string
		year       int
		out        string
	)
	cmd := &cobra.Command{
		Use:   "recap",
		Short: "Print an employee's yearly scorecard, optionally writing the transcript PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				ctx = operator(ctx)
				card, err := a.Performance.Yearly(ctx, performance.YearlyRequest{EmployeeID: employeeID, Year: year})
				if err != nil {
					return err
				}
				renderScorecard(cmd, card)

				if out == "" {
					return nil
				}
				file, err := a.Documents.Transcript(ctx, document.TranscriptRequest{EmployeeID: employeeID, Year: year})
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, file.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee id")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year")
	cmd.Flags().StringVar(&out, "out", "", "write the transcript PDF to this path")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func renderScorecard(cmd *cobra.Command, card performance.Scorecard) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetTitle(card.Label)
	tw.AppendHeader(table.Row{"Category", "Activity", "Achieved", "Target", "%"})
	for _, c := range card.Categories {
		for _, s := range c.Activities {
			tw.AppendRow(table.Row{c.Category, s.Title, s.Achieved, s.Target, s.Percentage})
		}
		tw.AppendRow(table.Row{c.Category, "score", "", "", fmt.Sprintf("%d (%s)", c.Score, c.Grade)})
		tw.AppendSeparator()
	}
	tw.AppendFooter(table.Row{"Index", card.CompositeIndex.StringFixed(2), "", "", string(card.Predicate)})
	tw.Render()
}
