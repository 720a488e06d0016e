package analyzer

import (
	"strings"

	"pylens/src/model"
)

const (
	complexityThreshold = 10
	nestingThreshold    = 3
)

var (
	decomposeSuggestion = model.Suggestion{
		Line:        1,
		Category:    model.SuggestionBestPractice,
		Priority:    model.PriorityHigh,
		Title:       "High Cyclomatic Complexity",
		Description: "Break down complex functions into smaller, focused functions.",
		Example:     "def process_data():\n    validate_input()\n    transform_data()\n    save_results()",
	}

	nestingSuggestion = model.Suggestion{
		Line:        1,
		Category:    model.SuggestionReadability,
		Priority:    model.PriorityMedium,
		Title:       "Deep Nesting",
		Description: "Reduce nesting with early returns or guard clauses.",
		Example:     "if not condition:\n    return\n# Continue with main logic",
	}

	enumerateSuggestion = model.Suggestion{
		Category:    model.SuggestionOptimization,
		Priority:    model.PriorityMedium,
		Title:       "Use enumerate() instead of range(len())",
		Description: "enumerate() is more Pythonic and efficient.",
		Example:     "for i, item in enumerate(items):",
	}

	evalSuggestion = model.Suggestion{
		Category:    model.SuggestionSecurity,
		Priority:    model.PriorityHigh,
		Title:       "Avoid eval() and exec()",
		Description: "These functions can execute arbitrary code and pose security risks.",
		Example:     "Use ast.literal_eval() for safe evaluation of literals",
	}
)

func generateSuggestions(src *Source, cm model.ComplexityMetrics) []model.Suggestion {
	suggestions := []model.Suggestion{}

	if cm.CyclomaticComplexity > complexityThreshold {
		suggestions = append(suggestions, decomposeSuggestion)
	}
	if cm.MaxNestingDepth > nestingThreshold {
		suggestions = append(suggestions, nestingSuggestion)
	}

	for _, ln := range src.Lines {
		if strings.Contains(ln.Trimmed, "range(len(") {
			s := enumerateSuggestion
			s.Line = ln.Number
			suggestions = append(suggestions, s)
		}
		if strings.Contains(ln.Trimmed, "eval(") || strings.Contains(ln.Trimmed, "exec(") {
			s := evalSuggestion
			s.Line = ln.Number
			suggestions = append(suggestions, s)
		}
	}

	return suggestions
}
