package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"monitorboard/lib/scrapers/untis"
	"monitorboard/lib/serviceutil"
	"monitorboard/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var showDate *string
var showOffset *int
var showDays *int
var showClasses *[]string
var showJson *bool

func init() {
	showDate = showCmd.Flags().String("date", "", "The base date to query (2006-01-02). Defaults to today.")
	showOffset = showCmd.Flags().Int("offset", 0, "Day offset applied to the base date, may be negative.")
	showDays = showCmd.Flags().Int("days", 1, "Number of days to request.")
	showClasses = showCmd.Flags().StringArray("class", nil, "Only show rows for this class, may be repeated.")
	showJson = showCmd.Flags().Bool("json", false, "Print the grouped board as JSON instead of tables.")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [--date <2006-01-02>] [--offset <days>] [--class <name>]...",
	Short: "Fetch the substitution board and display it grouped by class.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		svc, cleanup := cfg.service()
		defer cleanup()

		// fetch unfiltered so a miss can still suggest class names
		fetched, err := svc.Fetch(cmd.Context(), untis.QueryOptions{
			TargetDate:   parseQueryDate(*showDate),
			DateOffset:   *showOffset,
			NumberOfDays: *showDays,
		})
		if err != nil {
			serviceutil.Fatal("failed to fetch board", err)
		}

		rows := untis.FilterRows(fetched.Rows, *showClasses)
		if len(rows) == 0 && len(*showClasses) > 0 {
			names := untis.GroupNames(fetched.Rows)
			for _, class := range *showClasses {
				suggestions := textutil.SuggestNames(class, names)
				if len(suggestions) > 0 {
					fmt.Fprintf(os.Stderr, "no rows for %q, did you mean %q?\n", class, suggestions[0])
				}
			}
		}
		grouped := untis.GroupByClass(rows)

		if *showJson {
			printJsonBoard(fetched, grouped)
			return
		}

		renderBoard(grouped)
		renderAbsentElements(fetched.AbsentElements)
		fmt.Println("last update:", fetched.LastUpdate)
	},
}

func renderBoard(grouped []untis.ClassRows) {
	t := newTable()
	t.AppendHeader(table.Row{"class", "hour", "subject", "room", "teacher", "info", ""})
	for i, bucket := range grouped {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, row := range bucket.Rows {
			v := untis.DerivePresentation(row)
			marker := ""
			if v.Cancelled {
				marker = "cancelled"
			}
			t.AppendRow(table.Row{
				bucket.Name, v.Hour, v.Subject, v.Room, v.Teacher, v.Info, marker,
			})
		}
	}
	t.Render()
}

func renderAbsentElements(elements []untis.AbsentElement) {
	if len(elements) == 0 {
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"absent", "type"})
	for _, e := range elements {
		kind := ""
		if len(e.Absences) > 0 {
			kind = e.Absences[0].Type
		}
		t.AppendRow(table.Row{e.ElementName, kind})
	}
	t.Render()
}

type jsonGroup struct {
	Name string          `json:"name"`
	Rows []untis.RowView `json:"rows"`
}

type jsonBoard struct {
	LastUpdate     string                `json:"lastUpdate"`
	Groups         []jsonGroup           `json:"groups"`
	AbsentElements []untis.AbsentElement `json:"absentElements"`
}

func printJsonBoard(fetched *untis.Board, grouped []untis.ClassRows) {
	out := jsonBoard{
		LastUpdate:     fetched.LastUpdate,
		Groups:         make([]jsonGroup, 0, len(grouped)),
		AbsentElements: fetched.AbsentElements,
	}
	for _, bucket := range grouped {
		views := make([]untis.RowView, 0, len(bucket.Rows))
		for _, row := range bucket.Rows {
			views = append(views, untis.DerivePresentation(row))
		}
		out.Groups = append(out.Groups, jsonGroup{Name: bucket.Name, Rows: views})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		serviceutil.Fatal("failed to encode board", err)
	}
}
