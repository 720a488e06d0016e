package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/service/analyzer"
	"pylens/src/util"
)

// Generator generates reports in various formats
type Generator struct {
	cfg     config.OutputConfig
	version string
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig, version string) *Generator {
	return &Generator{cfg: cfg, version: version}
}

// Extension returns the file extension for a report format
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	case "sarif":
		return "sarif"
	case "text":
		return "txt"
	default:
		return "json"
	}
}

// Generate generates a report in the specified format
func (g *Generator) Generate(report *model.BatchReport, format string) (string, error) {
	util.Debug("Generating report in %s format (%d files, %d issues)", format, len(report.Files), report.Summary.TotalIssues)
	switch format {
	case "json":
		return g.generateJSON(report)
	case "markdown", "md":
		return g.generateMarkdown(report)
	case "sarif":
		return g.generateSARIF(report)
	case "text":
		return g.generateText(report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (g *Generator) generateJSON(report *model.BatchReport) (string, error) {
	data, err := json.MarshalIndent(g.trimmed(report), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// trimmed applies the output options to a copy of the report
func (g *Generator) trimmed(report *model.BatchReport) *model.BatchReport {
	out := *report
	out.Files = make([]model.FileReport, len(report.Files))

	for i, f := range report.Files {
		if f.Report != nil {
			r := *f.Report
			if !g.cfg.IncludeSuggestions {
				r.Suggestions = []model.Suggestion{}
			}
			if !g.cfg.IncludeExplanation {
				r.Explanation = ""
			}
			r.SyntaxIssues = g.limit(r.SyntaxIssues)
			f.Report = &r
		}
		out.Files[i] = f
	}

	return &out
}

func (g *Generator) limit(issues []model.Issue) []model.Issue {
	if g.cfg.MaxIssuesPerFile > 0 && len(issues) > g.cfg.MaxIssuesPerFile {
		return issues[:g.cfg.MaxIssuesPerFile]
	}
	return issues
}

func (g *Generator) generateMarkdown(report *model.BatchReport) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("# Python Analysis Report\n\n")
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	// Summary
	s := report.Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Files:** %d (%d analyzed, %d unsupported, %d failed)\n",
		s.TotalFiles, s.AnalyzedFiles, s.UnsupportedFiles, s.FailedFiles))
	sb.WriteString(fmt.Sprintf("- **Total Issues:** %d\n\n", s.TotalIssues))

	sb.WriteString("### Issues by Severity\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, sev := range model.Severities {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", sev, s.BySeverity[sev]))
	}
	sb.WriteString("\n")

	sb.WriteString("### Issues by Category\n\n")
	sb.WriteString("| Category | Count |\n")
	sb.WriteString("|----------|-------|\n")
	for _, cat := range model.Categories {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", cat, s.ByCategory[cat]))
	}
	sb.WriteString("\n")

	if s.AnalyzedFiles > 0 {
		a := s.AverageScores
		sb.WriteString("### Average Quality Scores\n\n")
		sb.WriteString("| Maintainability | Readability | Testability | Performance | Security |\n")
		sb.WriteString("|-----------------|-------------|-------------|-------------|----------|\n")
		sb.WriteString(fmt.Sprintf("| %.1f | %.1f | %.1f | %.1f | %.1f |\n\n",
			a.Maintainability, a.Readability, a.Testability, a.Performance, a.Security))
	}

	// Files
	sb.WriteString("## Files\n\n")
	for _, f := range report.Files {
		sb.WriteString(fmt.Sprintf("### `%s`\n\n", f.Path))

		switch {
		case f.Unsupported:
			sb.WriteString("Skipped: not recognized as Python.\n\n")
			continue
		case f.Error != "":
			sb.WriteString(fmt.Sprintf("Failed: %s\n\n", f.Error))
			continue
		case f.Report == nil:
			continue
		}

		r := f.Report
		cm := r.LogicalAnalysis.Complexity
		sb.WriteString(fmt.Sprintf("- **Lines of code:** %d\n", cm.LinesOfCode))
		sb.WriteString(fmt.Sprintf("- **Cyclomatic complexity:** %d\n", cm.CyclomaticComplexity))
		sb.WriteString(fmt.Sprintf("- **Scores:** maintainability %d, readability %d, testability %d, performance %d, security %d\n\n",
			r.CodeQuality.Maintainability, r.CodeQuality.Readability, r.CodeQuality.Testability,
			r.CodeQuality.Performance, r.CodeQuality.Security))

		issues := g.limit(r.SyntaxIssues)
		if len(issues) > 0 {
			sb.WriteString("| Line | Col | Severity | Category | Message |\n")
			sb.WriteString("|------|-----|----------|----------|---------|\n")
			for _, issue := range issues {
				sb.WriteString(fmt.Sprintf("| %d | %d | %s %s | %s | %s |\n",
					issue.Line, issue.Column, severityTag(issue.Severity), issue.Severity, issue.Category,
					strings.ReplaceAll(issue.Message, "|", `\|`)))
			}
			if hidden := len(r.SyntaxIssues) - len(issues); hidden > 0 {
				sb.WriteString(fmt.Sprintf("\n_%d more issue(s) not shown._\n", hidden))
			}
			sb.WriteString("\n")
		}

		if g.cfg.IncludeSuggestions && len(r.Suggestions) > 0 {
			sb.WriteString("**Suggestions:**\n\n")
			for _, sug := range r.Suggestions {
				sb.WriteString(fmt.Sprintf("- Line %d [%s] **%s**: %s\n", sug.Line, sug.Priority, sug.Title, sug.Description))
				if sug.Example != "" {
					sb.WriteString("\n```python\n")
					sb.WriteString(sug.Example)
					sb.WriteString("\n```\n")
				}
			}
			sb.WriteString("\n")
		}

		if r.CodeOutput.HasOutput {
			sb.WriteString("**Predicted output:**\n\n```\n")
			sb.WriteString(r.CodeOutput.Output)
			sb.WriteString("\n```\n\n")
		}

		if g.cfg.IncludeExplanation && r.Explanation != "" {
			sb.WriteString("<details><summary>Explanation</summary>\n\n")
			sb.WriteString(r.Explanation)
			sb.WriteString("\n\n</details>\n\n")
		}
	}

	return sb.String(), nil
}

func (g *Generator) generateSARIF(report *model.BatchReport) (string, error) {
	sarif := map[string]any{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]any{
			{
				"tool": map[string]any{
					"driver": map[string]any{
						"name":    "pylens",
						"version": g.version,
						"rules":   g.buildSARIFRules(report.Files),
					},
				},
				"results": g.buildSARIFResults(report.Files),
			},
		},
	}

	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Generator) buildSARIFRules(files []model.FileReport) []map[string]any {
	ruleMap := make(map[string]bool)
	rules := []map[string]any{}

	for _, f := range files {
		if f.Report == nil {
			continue
		}
		for _, issue := range f.Report.SyntaxIssues {
			if ruleMap[issue.Rule] {
				continue
			}
			ruleMap[issue.Rule] = true

			summary := issue.Message
			if rule, ok := analyzer.RuleByID(issue.Rule); ok {
				summary = rule.Summary
			}
			rules = append(rules, map[string]any{
				"id":   issue.Rule,
				"name": string(issue.Category),
				"shortDescription": map[string]any{
					"text": summary,
				},
				"defaultConfiguration": map[string]any{
					"level": sarifLevel(issue.Severity),
				},
			})
		}
	}

	return rules
}

func (g *Generator) buildSARIFResults(files []model.FileReport) []map[string]any {
	results := []map[string]any{}

	for _, f := range files {
		if f.Report == nil {
			continue
		}
		for _, issue := range f.Report.SyntaxIssues {
			results = append(results, map[string]any{
				"ruleId":  issue.Rule,
				"level":   sarifLevel(issue.Severity),
				"message": map[string]any{"text": issue.Message},
				"locations": []map[string]any{
					{
						"physicalLocation": map[string]any{
							"artifactLocation": map[string]any{
								"uri": f.Path,
							},
							"region": map[string]any{
								"startLine":   issue.Line,
								"startColumn": issue.Column,
							},
						},
					},
				},
			})
		}
	}

	return results
}

func severityTag(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "[E]"
	case model.SeverityWarning:
		return "[W]"
	default:
		return "[I]"
	}
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
