package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"pylens/src/model"
)

func (g *Generator) generateText(report *model.BatchReport) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(renderFileTable(report))

	for _, f := range report.Files {
		if f.Report == nil || len(f.Report.SyntaxIssues) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n%s\n", f.Path)
		buf.WriteString(renderIssueTable(g.limit(f.Report.SyntaxIssues)))
		if hidden := len(f.Report.SyntaxIssues) - g.cfg.MaxIssuesPerFile; g.cfg.MaxIssuesPerFile > 0 && hidden > 0 {
			fmt.Fprintf(&buf, "  ... %d more\n", hidden)
		}
	}

	return buf.String(), nil
}

func renderFileTable(report *model.BatchReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Status", "Issues", "CC", "Maint", "Read", "Test", "Perf", "Sec"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, f := range report.Files {
		switch {
		case f.Unsupported:
			table.Append([]string{f.Path, "unsupported", "", "", "", "", "", "", ""})
		case f.Error != "" || f.Report == nil:
			table.Append([]string{f.Path, "failed", "", "", "", "", "", "", ""})
		default:
			r := f.Report
			q := r.CodeQuality
			table.Append([]string{
				f.Path,
				"ok",
				strconv.Itoa(len(r.SyntaxIssues)),
				strconv.Itoa(r.LogicalAnalysis.Complexity.CyclomaticComplexity),
				strconv.Itoa(q.Maintainability),
				strconv.Itoa(q.Readability),
				strconv.Itoa(q.Testability),
				strconv.Itoa(q.Performance),
				strconv.Itoa(q.Security),
			})
		}
	}

	s := report.Summary
	a := s.AverageScores
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", s.TotalFiles),
		fmt.Sprintf("%d ok", s.AnalyzedFiles),
		strconv.Itoa(s.TotalIssues),
		"",
		fmt.Sprintf("%.0f", a.Maintainability),
		fmt.Sprintf("%.0f", a.Readability),
		fmt.Sprintf("%.0f", a.Testability),
		fmt.Sprintf("%.0f", a.Performance),
		fmt.Sprintf("%.0f", a.Security),
	})

	table.Render()

	return tableBuffer.String()
}

func renderIssueTable(issues []model.Issue) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Col", "Severity", "Rule", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, issue := range issues {
		table.Append([]string{
			strconv.Itoa(issue.Line),
			strconv.Itoa(issue.Column),
			string(issue.Severity),
			issue.Rule,
			issue.Message,
		})
	}

	table.Render()

	return tableBuffer.String()
}
