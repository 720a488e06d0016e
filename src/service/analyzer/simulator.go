package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pylens/src/model"
)

const maxAliasDepth = 8

var (
	printPattern      = regexp.MustCompile(`print\s*\((.*)\)`)
	arithmeticPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([+\-*/])\s*(\d+(?:\.\d+)?)$`)
	numberPattern     = regexp.MustCompile(`^\d+(\.\d+)?$`)
	identPattern      = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	rangeCallPattern  = regexp.MustCompile(`range\((\d+)\)`)
	fieldNamePattern  = regexp.MustCompile(`\{(\w+)\}`)
	fieldExprPattern  = regexp.MustCompile(`\{([^}]+)\}`)
)

// statementKeywords start lines that never evaluate to a shown value
var statementKeywords = []string{
	"return", "pass", "raise", "import", "from", "break", "continue",
	"del", "global", "nonlocal", "assert", "yield", "else", "finally",
}

// runtimeWarnings are independent substring flags on the whole source
var runtimeWarnings = []struct {
	marker  string
	message string
}{
	{"input(", "Code contains input() calls - interactive input required"},
	{"time.sleep(", "Code contains sleep() calls - execution may be delayed"},
	{"random.", "Code uses random functions - output may vary between runs"},
	{"open(", "Code performs file operations - ensure files exist"},
}

// callPlaceholders resolve well-known calls, checked in order
var callPlaceholders = []struct {
	marker      string
	placeholder string
}{
	{"len(", "<length>"},
	{"str(", "<string>"},
	{"int(", "<integer>"},
}

// simulateExecution predicts printed output. It never runs the code.
func simulateExecution(src *Source, issues []model.Issue) model.ExecutionPrediction {
	start := time.Now()

	pred := model.ExecutionPrediction{
		CanExecute: true,
		Errors:     []string{},
		Warnings:   []string{},
	}

	for _, issue := range issues {
		if issue.Severity == model.SeverityError {
			pred.Errors = append(pred.Errors, fmt.Sprintf("Line %d: %s", issue.Line, issue.Message))
		}
	}

	if len(pred.Errors) > 0 {
		pred.CanExecute = false
	} else {
		pred.Output = (&simulator{src: src}).run()
		pred.HasOutput = pred.Output != ""
	}

	for _, w := range runtimeWarnings {
		if strings.Contains(src.Text, w.marker) {
			pred.Warnings = append(pred.Warnings, w.message)
		}
	}

	pred.ExecutionTime = float64(time.Since(start).Microseconds()) / 1000
	return pred
}

type simulator struct {
	src *Source
}

func (s *simulator) run() string {
	var out []string

	for idx, ln := range s.src.Lines {
		if !strings.Contains(ln.Trimmed, "print(") {
			continue
		}
		m := printPattern.FindStringSubmatch(ln.Trimmed)
		if m == nil {
			continue
		}
		if content := strings.TrimSpace(m[1]); content != "" {
			out = append(out, s.resolve(content, idx))
		}
	}

	if idx := s.src.lastCodeLine(); idx >= 0 && isBareExpression(s.src.Lines[idx]) {
		out = append(out, s.resolve(s.src.Lines[idx].Trimmed, idx))
	}

	return strings.Join(out, "\n")
}

func isBareExpression(ln Line) bool {
	t := ln.Trimmed
	if strings.Contains(t, "print(") || strings.Contains(t, "=") {
		return false
	}
	if ln.Kind.IsBlockHeader() || strings.HasSuffix(t, ":") {
		return false
	}
	for _, kw := range statementKeywords {
		if t == kw || strings.HasPrefix(t, kw+" ") {
			return false
		}
	}
	return true
}

// resolve turns a print argument into its predicted text
func (s *simulator) resolve(content string, idx int) string {
	if isFString(content) {
		return interpolate(content[2 : len(content)-1])
	}
	if lit, ok := unquote(content); ok {
		return lit
	}
	if v, ok := evalArithmetic(content); ok {
		return v
	}
	if strings.ContainsAny(content, "+*/") {
		return placeholder(content)
	}
	if strings.Contains(content, "(") && strings.Contains(content, ")") {
		return resolveCall(content)
	}
	if identPattern.MatchString(content) {
		if v, ok := s.lookup(content, idx, 0); ok {
			return v
		}
	}
	return placeholder(content)
}

// lookup searches backward from idx for the latest assignment to name
func (s *simulator) lookup(name string, idx, depth int) (string, bool) {
	for i := idx - 1; i >= 0; i-- {
		ln := s.src.Lines[i]
		if ln.Kind == KindAssignment && ln.AssignTarget == name {
			return s.resolveValue(strings.TrimSpace(ln.AssignValue), i, depth), true
		}
	}
	return "", false
}

func (s *simulator) resolveValue(value string, idx, depth int) string {
	if lit, ok := unquote(value); ok {
		return lit
	}
	if numberPattern.MatchString(value) {
		return value
	}
	if isWrapped(value, "[", "]") || isWrapped(value, "{", "}") {
		return value
	}
	if identPattern.MatchString(value) && depth < maxAliasDepth {
		if v, ok := s.lookup(value, idx, depth+1); ok {
			return v
		}
	}
	return placeholder(value)
}

func resolveCall(call string) string {
	for _, c := range callPlaceholders {
		if strings.Contains(call, c.marker) {
			return c.placeholder
		}
	}
	if strings.Contains(call, "range(") {
		if m := rangeCallPattern.FindStringSubmatch(call); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n <= 10 {
				return fmt.Sprintf("range(0, %d)", n)
			}
		}
		return "<range object>"
	}
	return placeholder(call)
}

// evalArithmetic evaluates a single binary operation on two numeric literals
func evalArithmetic(expr string) (string, bool) {
	m := arithmeticPattern.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return "", false
	}
	a, errA := strconv.ParseFloat(m[1], 64)
	b, errB := strconv.ParseFloat(m[3], 64)
	if errA != nil || errB != nil {
		return "", false
	}

	var v float64
	switch m[2] {
	case "+":
		v = a + b
	case "-":
		v = a - b
	case "*":
		v = a * b
	case "/":
		if b == 0 {
			return "", false
		}
		v = a / b
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

func isFString(s string) bool {
	return len(s) >= 3 && (strings.HasPrefix(s, `f"`) || strings.HasPrefix(s, "f'")) && s[len(s)-1] == s[1]
}

// interpolate replaces {name} with <name> and dotted {expr} with <expr>.
// Other fields are left as written.
func interpolate(body string) string {
	body = fieldNamePattern.ReplaceAllString(body, "<$1>")
	return fieldExprPattern.ReplaceAllStringFunc(body, func(field string) string {
		expr := field[1 : len(field)-1]
		if strings.Contains(expr, ".") {
			return placeholder(expr)
		}
		return field
	})
}

func unquote(s string) (string, bool) {
	if isWrapped(s, `"`, `"`) || isWrapped(s, "'", "'") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func isWrapped(s, open, close string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, open) && strings.HasSuffix(s, close)
}

func placeholder(s string) string {
	return "<" + s + ">"
}
