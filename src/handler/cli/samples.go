package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pylens/src/model"
	"pylens/src/service/samples"
)

func (h *Handler) samplesCmd() *cobra.Command {
	var (
		difficulty string
		concept    string
	)

	list := func(cmd *cobra.Command, args []string) error {
		d, err := samples.ParseDifficulty(difficulty)
		if err != nil {
			return err
		}
		found := samples.Default().Filter(d, concept)
		if len(found) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No samples match.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), renderSampleTable(found))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the built-in Python samples",
		RunE:  list,
	}
	cmd.PersistentFlags().StringVar(&difficulty, "difficulty", "", "Filter by difficulty (beginner, intermediate, advanced)")
	cmd.PersistentFlags().StringVar(&concept, "concept", "", "Filter by concept")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List samples",
		RunE:  list,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a sample's code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := samples.Default().ByID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(s.Title))
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%s | %s", s.Difficulty, strings.Join(s.Concepts, ", "))))
			fmt.Fprintln(out, s.Description)
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.Code)
			return nil
		},
	})

	return cmd
}

func renderSampleTable(list []model.Sample) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Title", "Difficulty", "Concepts"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, s := range list {
		table.Append([]string{s.ID, s.Title, string(s.Difficulty), strings.Join(s.Concepts, ", ")})
	}
	table.Render()

	return tableBuffer.String()
}
