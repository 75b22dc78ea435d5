package root

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/spf13/cobra"
)

func newWeeksCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Show the week buckets of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			mk, err := calendar.ParseMonthKey(month)
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetTitle(mk.String())
			tw.AppendHeader(table.Row{"Week", "Days", "Length"})
			for _, b := range calendar.MonthWeeks(mk) {
				tw.AppendRow(table.Row{b.WeekIndex, fmt.Sprintf("%d-%d", b.Days[0], b.Days[len(b.Days)-1]), b.Len()})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month in YYYY-MM format")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
