package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pylens/src/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// scoreStyle colors a 0-100 score
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return successStyle
	case score >= 60:
		return warnStyle
	default:
		return errorStyle
	}
}

func renderSummary(s model.BatchSummary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Analysis complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Files: %d analyzed", s.AnalyzedFiles)
	if s.UnsupportedFiles > 0 {
		b.WriteString(", " + warnStyle.Render(fmt.Sprintf("%d unsupported", s.UnsupportedFiles)))
	}
	if s.FailedFiles > 0 {
		b.WriteString(", " + errorStyle.Render(fmt.Sprintf("%d failed", s.FailedFiles)))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "  Issues: %d (%s, %s, %s)\n", s.TotalIssues,
		errorStyle.Render(fmt.Sprintf("%d error", s.BySeverity[model.SeverityError])),
		warnStyle.Render(fmt.Sprintf("%d warning", s.BySeverity[model.SeverityWarning])),
		mutedStyle.Render(fmt.Sprintf("%d info", s.BySeverity[model.SeverityInfo])))

	if s.AnalyzedFiles > 0 {
		a := s.AverageScores
		scores := []struct {
			name  string
			value float64
		}{
			{"maintainability", a.Maintainability},
			{"readability", a.Readability},
			{"testability", a.Testability},
			{"performance", a.Performance},
			{"security", a.Security},
		}
		parts := make([]string, len(scores))
		for i, sc := range scores {
			parts[i] = fmt.Sprintf("%s %s", sc.name, scoreStyle(sc.value).Render(fmt.Sprintf("%.0f", sc.value)))
		}
		fmt.Fprintf(&b, "  Scores: %s\n", strings.Join(parts, ", "))
	}

	return b.String()
}
