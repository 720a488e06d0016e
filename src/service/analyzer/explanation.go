package analyzer

import (
	"fmt"
	"strings"

	"pylens/src/model"
)

const explanationListLimit = 3

// composeExplanation renders the upstream results as a markdown narrative.
// Section order is fixed.
func composeExplanation(cm model.ComplexityMetrics, issues []model.Issue, q model.QualityScores, suggestions []model.Suggestion) string {
	var b strings.Builder

	b.WriteString("## Python Code Analysis Summary\n\n")

	b.WriteString("### Code Structure and Organization\n")
	fmt.Fprintf(&b, "This Python code consists of %d lines with a cyclomatic complexity of %d. ",
		cm.LinesOfCode, cm.CyclomaticComplexity)
	switch {
	case cm.CyclomaticComplexity <= 5:
		b.WriteString("The code has low complexity and follows good structural practices. ")
	case cm.CyclomaticComplexity <= 10:
		b.WriteString("The code has moderate complexity. Consider refactoring for better maintainability. ")
	default:
		b.WriteString("The code has high complexity and would benefit from being broken into smaller functions. ")
	}

	b.WriteString("\n\n### PEP 8 Compliance\n")
	styleIssues := model.FilterByCategory(issues, model.CategoryStyle)
	if len(styleIssues) == 0 {
		b.WriteString("Excellent! The code follows PEP 8 style guidelines.\n")
	} else {
		fmt.Fprintf(&b, "Found %d PEP 8 style issue(s). Key areas for improvement:\n", len(styleIssues))
		for _, issue := range styleIssues[:min(explanationListLimit, len(styleIssues))] {
			fmt.Fprintf(&b, "- Line %d: %s\n", issue.Line, issue.Message)
		}
	}

	b.WriteString("\n### Performance Analysis\n")
	fmt.Fprintf(&b, "**Performance Score**: %d/100 - ", q.Performance)
	switch {
	case q.Performance >= 80:
		b.WriteString("Good performance characteristics with efficient algorithms.\n")
	case q.Performance >= 60:
		b.WriteString("Some performance optimizations possible.\n")
	default:
		b.WriteString("Several performance issues identified that should be addressed.\n")
	}

	b.WriteString("\n### Security Assessment\n")
	fmt.Fprintf(&b, "**Security Score**: %d/100 - ", q.Security)
	securityIssues := model.FilterByCategory(issues, model.CategorySecurity)
	if len(securityIssues) == 0 {
		b.WriteString("No obvious security vulnerabilities detected.\n")
	} else {
		fmt.Fprintf(&b, "%d potential security issue(s) found:\n", len(securityIssues))
		for _, issue := range securityIssues {
			fmt.Fprintf(&b, "- Line %d: %s\n", issue.Line, issue.Message)
		}
	}

	if len(issues) > 0 {
		b.WriteString("\n### Issues Summary\n")
		fmt.Fprintf(&b, "Total issues found: %d\n", len(issues))
		for _, row := range []struct {
			label string
			sev   model.Severity
		}{
			{"Errors", model.SeverityError},
			{"Warnings", model.SeverityWarning},
			{"Info", model.SeverityInfo},
		} {
			if n := model.CountBySeverity(issues, row.sev); n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", row.label, n)
			}
		}
	}

	b.WriteString("\n### Recommendations\n")
	if len(suggestions) == 0 {
		b.WriteString("Great job! The code follows Python best practices.")
	} else {
		for _, s := range suggestions[:min(explanationListLimit, len(suggestions))] {
			fmt.Fprintf(&b, "- **%s**: %s\n", s.Title, s.Description)
		}
	}

	return b.String()
}
