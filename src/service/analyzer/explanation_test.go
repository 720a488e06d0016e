package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplanation_Clean(t *testing.T) {
	report := mustAnalyze(t, `print("hi")`)

	want := "## Python Code Analysis Summary\n\n" +
		"### Code Structure and Organization\n" +
		"This Python code consists of 1 lines with a cyclomatic complexity of 1. " +
		"The code has low complexity and follows good structural practices. " +
		"\n\n### PEP 8 Compliance\n" +
		"Excellent! The code follows PEP 8 style guidelines.\n" +
		"\n### Performance Analysis\n" +
		"**Performance Score**: 100/100 - Good performance characteristics with efficient algorithms.\n" +
		"\n### Security Assessment\n" +
		"**Security Score**: 100/100 - No obvious security vulnerabilities detected.\n" +
		"\n### Recommendations\n" +
		"Great job! The code follows Python best practices."

	assert.Equal(t, want, report.Explanation)
}

func TestExplanation_SectionsAndLists(t *testing.T) {
	code := strings.Join([]string{
		"import os",
		"myVar = 1",
		"otherVar = 2",
		"thirdVar = 3",
		"fourthVar = eval('4')",
		"for i in range(len(myVar)):",
		"    print(i)",
	}, "\n")
	report := mustAnalyze(t, code)
	text := report.Explanation

	headers := []string{
		"### Code Structure and Organization",
		"### PEP 8 Compliance",
		"### Performance Analysis",
		"### Security Assessment",
		"### Issues Summary",
		"### Recommendations",
	}
	last := -1
	for _, h := range headers {
		idx := strings.Index(text, h)
		assert.Greater(t, idx, last, h)
		last = idx
	}

	assert.Contains(t, text, "Found 4 PEP 8 style issue(s). Key areas for improvement:\n")
	assert.Contains(t, text, "- Line 2: Variable 'myVar' should use snake_case naming (PEP 8)\n")
	assert.Contains(t, text, "- Line 4: Variable 'thirdVar' should use snake_case naming (PEP 8)\n")
	assert.NotContains(t, text, "- Line 5: Variable 'fourthVar'")

	assert.Contains(t, text, "**Security Score**: 70/100 - 1 potential security issue(s) found:\n")
	assert.Contains(t, text, "- Line 5: Use of eval() or exec() is dangerous and should be avoided\n")

	assert.Contains(t, text, "Total issues found: 7\n")
	assert.Contains(t, text, "- Errors: 1\n")
	assert.Contains(t, text, "- Warnings: 4\n")
	assert.Contains(t, text, "- Info: 2\n")

	assert.Contains(t, text, "- **Avoid eval() and exec()**: These functions can execute arbitrary code and pose security risks.\n")
	assert.Contains(t, text, "- **Use enumerate() instead of range(len())**: enumerate() is more Pythonic and efficient.\n")
}

func TestExplanation_Tiers(t *testing.T) {
	moderate := mustAnalyze(t, strings.Repeat("if a:\n    pass\n", 6))
	assert.Contains(t, moderate.Explanation, "The code has moderate complexity.")

	high := mustAnalyze(t, strings.Repeat("if a:\n    pass\n", 10))
	assert.Contains(t, high.Explanation, "The code has high complexity")

	slow := mustAnalyze(t, "for a in x:\n    for b in y:\n        for c in z:\n            for d in w:\n                pass\n")
	assert.Contains(t, slow.Explanation, "**Performance Score**: 70/100 - Some performance optimizations possible.\n")
}
