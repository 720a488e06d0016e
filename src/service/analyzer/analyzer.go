// Package analyzer is the heuristic Python analysis engine. Every pass works
// on raw lines with prefix and pattern tests; no syntax tree is built.
package analyzer

import (
	"pylens/src/model"
	"pylens/src/util"
)

// Language is the only language the analyzer accepts
const Language = "python"

// Analyzer runs the analysis passes. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	usage UsageMatcher
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithUsageMatcher replaces the textual variable-usage test
func WithUsageMatcher(m UsageMatcher) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.usage = m
		}
	}
}

// New creates an analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{usage: SubstringMatcher{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the report for one source string. The only error is
// ErrNotSupportedLanguage, returned before any pass runs.
func (a *Analyzer) Analyze(code string) (*model.AnalysisReport, error) {
	if !Accepts(code) {
		return nil, ErrNotSupportedLanguage
	}

	src := NewSource(code)
	util.Debug("Analyzing %d lines", len(src.Lines))

	issues := checkStyle(src)
	controlFlow := extractControlFlow(src)
	dataFlow := approximateDataFlow(src, a.usage)
	complexity := scoreComplexity(src)

	quality := scoreQuality(src, complexity, issues)
	output := simulateExecution(src, issues)
	suggestions := generateSuggestions(src, complexity)
	explanation := composeExplanation(complexity, issues, quality, suggestions)

	if issues == nil {
		issues = []model.Issue{}
	}

	return &model.AnalysisReport{
		Language:     Language,
		SyntaxIssues: issues,
		LogicalAnalysis: model.LogicalAnalysis{
			ControlFlow: controlFlow,
			DataFlow:    dataFlow,
			Complexity:  complexity,
		},
		CodeQuality: quality,
		Suggestions: suggestions,
		Explanation: explanation,
		CodeOutput:  output,
	}, nil
}

var defaultAnalyzer = New()

// Analyze runs the default analyzer
func Analyze(code string) (*model.AnalysisReport, error) {
	return defaultAnalyzer.Analyze(code)
}
