package commands

import (
	"fmt"
	"time"

	"monitorboard/lib/serviceutil"
	boarddb "monitorboard/services/board/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 20, "Maximum number of records to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit <n>]",
	Short: "Show recently made board queries.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		database := cfg.openHistory()
		if database == nil {
			serviceutil.Fatal("no history db configured", fmt.Errorf("set history.file in config.json5"))
		}
		defer database.Close()

		records, err := boarddb.New(database).ListQueryRecords(cmd.Context(), int64(*historyLimit))
		if err != nil {
			serviceutil.Fatal("failed to list query history", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"queried at", "date", "offset", "days", "filter", "rows", "last update"})
		for _, r := range records {
			t.AppendRow(table.Row{
				time.Unix(r.QueriedAt, 0).Format(time.DateTime),
				r.Date,
				r.DateOffset,
				r.NumberOfDays,
				r.FilterGroups,
				r.RowCount,
				r.LastUpdate,
			})
		}
		t.Render()
	},
}
