package analyzer

import (
	"strings"

	"pylens/src/model"
)

// penaltyRule subtracts points once per matching line
type penaltyRule struct {
	name    string
	penalty int
	match   func(ln Line) bool
}

func containsAll(subs ...string) func(Line) bool {
	return func(ln Line) bool {
		for _, sub := range subs {
			if !strings.Contains(ln.Trimmed, sub) {
				return false
			}
		}
		return true
	}
}

var performanceRules = []penaltyRule{
	{"index-iteration", 5, containsAll("range(len(")},
	{"loop-string-concat", 10, containsAll("for ", "+=", `"`)},
	{"loop-append", 8, containsAll(".append(", "for ")},
	{"list-of-range", 3, containsAll("list(", "range(")},
	{"nested-loop", 15, func(ln Line) bool {
		return (ln.Kind == KindFor || ln.Kind == KindWhile) && ln.IndentLevel() > 1
	}},
}

var securityRules = []penaltyRule{
	{"eval", 30, containsAll("eval(")},
	{"exec", 30, containsAll("exec(")},
	{"unchecked-input", 10, func(ln Line) bool {
		return strings.Contains(ln.Trimmed, "input(") && !strings.Contains(ln.Trimmed, "int(")
	}},
	{"pickle-load", 20, containsAll("pickle.load")},
	{"subprocess-shell", 25, containsAll("subprocess.", "shell=True")},
	{"os-system", 20, containsAll("os.system(")},
}

// applyPenalties scores lines from 100 down, floored at 0
func applyPenalties(src *Source, rules []penaltyRule) int {
	score := 100
	for _, ln := range src.Lines {
		for _, rule := range rules {
			if rule.match(ln) {
				score -= rule.penalty
			}
		}
	}
	return max(0, score)
}

func scoreQuality(src *Source, cm model.ComplexityMetrics, issues []model.Issue) model.QualityScores {
	errorCount := model.CountBySeverity(issues, model.SeverityError)
	styleCount := len(model.FilterByCategory(issues, model.CategoryStyle))

	return model.QualityScores{
		Maintainability: max(0, 100-5*cm.CyclomaticComplexity-10*errorCount),
		Readability:     max(0, 100-8*cm.MaxNestingDepth-3*styleCount),
		Testability:     max(0, 100-3*cm.CognitiveComplexity),
		Performance:     applyPenalties(src, performanceRules),
		Security:        applyPenalties(src, securityRules),
	}
}
