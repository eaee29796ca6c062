package commands

import (
	"monitorboard/lib/scrapers/untis"
	"monitorboard/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var classesOffset *int

func init() {
	classesOffset = classesCmd.Flags().Int("offset", 0, "Day offset applied to today, may be negative.")
	rootCmd.AddCommand(classesCmd)
}

var classesCmd = &cobra.Command{
	Use:   "classes [--offset <days>]",
	Short: "List the class names present on the board.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		svc, cleanup := cfg.service()
		defer cleanup()

		fetched, err := svc.Fetch(cmd.Context(), untis.QueryOptions{
			DateOffset: *classesOffset,
		})
		if err != nil {
			serviceutil.Fatal("failed to fetch board", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"class"})
		for _, name := range untis.GroupNames(fetched.Rows) {
			t.AppendRow(table.Row{name})
		}
		t.Render()
	},
}
