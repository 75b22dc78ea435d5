package root

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/fixtures"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the activity catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := fixtures.LoadCatalog(path)
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Category", "ID", "Title", "Target", "Trigger"})
			for _, category := range catalog.Categories() {
				for _, a := range catalog.ByCategory(category) {
					trigger := "checklist"
					if !a.IsChecklist() {
						trigger = string(a.AutomationTrigger)
					}
					tw.AppendRow(table.Row{category, a.ID, a.Title, a.MonthlyTarget, trigger})
				}
			}
			tw.AppendFooter(table.Row{"", "", "", len(catalog.Activities()), ""})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "YAML catalog to validate (default: built-in catalog)")
	return cmd
}
