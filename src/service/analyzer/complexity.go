package analyzer

import (
	"strings"

	"pylens/src/model"
)

// isDecisionPoint reports whether a line adds a path. A line counts once
// even when it matches several patterns.
func isDecisionPoint(ln Line) bool {
	switch ln.Kind {
	case KindIf, KindElif, KindWhile, KindFor, KindTry, KindExcept:
		return true
	case KindComment, KindBlank:
		return false
	}
	return strings.Contains(ln.Trimmed, " and ") || strings.Contains(ln.Trimmed, " or ")
}

func scoreComplexity(src *Source) model.ComplexityMetrics {
	m := model.ComplexityMetrics{CyclomaticComplexity: 1}

	for _, ln := range src.Lines {
		level := ln.IndentLevel()
		m.MaxNestingDepth = max(m.MaxNestingDepth, level)

		if ln.IsCode() {
			m.LinesOfCode++
		}
		if isDecisionPoint(ln) {
			m.CyclomaticComplexity++
			m.CognitiveComplexity += 1 + level
		}
	}

	return m
}
