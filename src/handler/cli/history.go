package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pylens/src/service/history"
)

func (h *Handler) historyCmd() *cobra.Command {
	var (
		limit  int
		source string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent analyses from the history store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(h.cfg.History.Path)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer store.Close()

			var records []history.Record
			if source != "" {
				records, err = store.ForSource(source, limit)
			} else {
				records, err = store.Recent(limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No analyses recorded.")
				return nil
			}
			fmt.Fprint(out, renderHistoryTable(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().StringVar(&source, "source", "", "Only show entries for this source")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func renderHistoryTable(records []history.Record) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"When", "Source", "Issues", "E/W/I", "CC", "Maint", "Sec", "Runs"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, r := range records {
		runs := "no"
		if r.CanExecute {
			runs = "yes"
		}
		table.Append([]string{
			r.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
			r.Source,
			strconv.Itoa(r.IssueCount),
			fmt.Sprintf("%d/%d/%d", r.ErrorCount, r.WarningCount, r.InfoCount),
			strconv.Itoa(r.Cyclomatic),
			strconv.Itoa(r.Scores.Maintainability),
			strconv.Itoa(r.Scores.Security),
			runs,
		})
	}
	table.Render()

	return tableBuffer.String()
}
