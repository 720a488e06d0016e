package history

import (
	"time"

	"github.com/google/uuid"

	"pylens/src/model"
)

// Record is the persisted summary of one analysis
type Record struct {
	ID           uuid.UUID           `json:"id"`
	Source       string              `json:"source"`
	AnalyzedAt   time.Time           `json:"analyzed_at"`
	IssueCount   int                 `json:"issue_count"`
	ErrorCount   int                 `json:"error_count"`
	WarningCount int                 `json:"warning_count"`
	InfoCount    int                 `json:"info_count"`
	Cyclomatic   int                 `json:"cyclomatic"`
	Scores       model.QualityScores `json:"scores"`
	CanExecute   bool                `json:"can_execute"`
}

// NewRecord summarizes a report for storage
func NewRecord(source string, r *model.AnalysisReport, at time.Time) Record {
	rec := Record{
		ID:         uuid.New(),
		Source:     source,
		AnalyzedAt: at.UTC(),
		IssueCount: len(r.SyntaxIssues),
		Cyclomatic: r.LogicalAnalysis.Complexity.CyclomaticComplexity,
		Scores:     r.CodeQuality,
		CanExecute: r.CodeOutput.CanExecute,
	}
	for _, issue := range r.SyntaxIssues {
		switch issue.Severity {
		case model.SeverityError:
			rec.ErrorCount++
		case model.SeverityWarning:
			rec.WarningCount++
		default:
			rec.InfoCount++
		}
	}
	return rec
}
