package model

// Severity represents the severity level of a style or syntax issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists all severities from most to least severe
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Category represents the category of an issue
type Category string

const (
	CategoryStyle         Category = "style"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryBestPractice  Category = "best-practice"
	CategoryBug           Category = "bug"
	CategoryDocumentation Category = "documentation"
	CategoryUnused        Category = "unused"
)

// Categories lists all issue categories in report order
var Categories = []Category{
	CategoryStyle, CategorySecurity, CategoryPerformance, CategoryBestPractice,
	CategoryBug, CategoryDocumentation, CategoryUnused,
}

// Issue represents a single lint-style finding
type Issue struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
	Rule     string   `json:"rule,omitempty"`
}

// SuggestionCategory represents the kind of improvement a suggestion proposes
type SuggestionCategory string

const (
	SuggestionOptimization SuggestionCategory = "optimization"
	SuggestionBestPractice SuggestionCategory = "best-practice"
	SuggestionSecurity     SuggestionCategory = "security"
	SuggestionReadability  SuggestionCategory = "readability"
)

// Priority represents how urgently a suggestion should be addressed
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is an actionable improvement with an optional example snippet
type Suggestion struct {
	Line        int                `json:"line"`
	Category    SuggestionCategory `json:"category"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Example     string             `json:"example,omitempty"`
}

// CountBySeverity returns the number of issues with the given severity
func CountBySeverity(issues []Issue, severity Severity) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// FilterByCategory returns the issues in the given category, preserving order
func FilterByCategory(issues []Issue, category Category) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Category == category {
			out = append(out, issue)
		}
	}
	return out
}
