package cli

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pylens/src/service/analyzer"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.cfg.Agent.Name, h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List style checks and score penalties",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, titleStyle.Render("Style checks"))
			var rules bytes.Buffer
			table := tablewriter.NewWriter(&rules)
			table.SetHeader([]string{"Rule", "Severity", "Category", "Summary"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetAutoWrapText(false)
			for _, r := range analyzer.Rules {
				table.Append([]string{r.ID, string(r.Severity), string(r.Category), r.Summary})
			}
			table.Render()
			fmt.Fprint(out, rules.String())

			fmt.Fprintln(out)
			fmt.Fprintln(out, titleStyle.Render("Score penalties"))
			var penalties bytes.Buffer
			table = tablewriter.NewWriter(&penalties)
			table.SetHeader([]string{"Dimension", "Pattern", "Penalty"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			for _, p := range analyzer.Penalties() {
				table.Append([]string{p.Dimension, p.Name, "-" + strconv.Itoa(p.Penalty)})
			}
			table.Render()
			fmt.Fprint(out, penalties.String())
		},
	}
}
