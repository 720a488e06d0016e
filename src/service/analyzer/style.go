package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"pylens/src/model"
)

const maxLineLength = 79

var (
	snakeCasePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	capWordsPattern  = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
)

type importRecord struct {
	name string
	line int
}

// styleScan carries the state of one style pass
type styleScan struct {
	src     *Source
	issues  []model.Issue
	imports []importRecord
	seen    map[string]bool
}

func (s *styleScan) add(line, column int, rule Rule, msg string) {
	s.issues = append(s.issues, model.Issue{
		Line:     line,
		Column:   column,
		Severity: rule.Severity,
		Message:  msg,
		Category: rule.Category,
		Rule:     rule.ID,
	})
}

// styleCheck inspects one line. idx is the line's index into src.Lines.
type styleCheck func(s *styleScan, idx int, ln Line)

// Checks run in this order on every code line: the leading layout checks,
// then the handlers for the line's kind, then the trailing pattern checks.
var (
	layoutChecks = []styleCheck{
		checkTabIndent,
		checkIndentWidth,
		checkLineLength,
		checkTrailingWhitespace,
	}

	kindChecks = map[LineKind][]styleCheck{
		KindAssignment: {checkVariableName, checkDangerousCall, checkSQLInjection},
		KindDef:        {checkFunctionName, checkDocstring},
		KindClass:      {checkClassName},
		KindImport:     {recordImport},
		KindBareExcept: {checkBareExcept},
	}

	patternChecks = []styleCheck{
		checkMutableDefault,
		checkNoneComparison,
		checkIndexIteration,
		checkLoopConcatenation,
	}
)

func checkStyle(src *Source) []model.Issue {
	s := &styleScan{src: src, seen: make(map[string]bool)}

	for idx, ln := range src.Lines {
		if !ln.IsCode() {
			continue
		}
		for _, check := range layoutChecks {
			check(s, idx, ln)
		}
		for _, check := range kindChecks[ln.Kind] {
			check(s, idx, ln)
		}
		for _, check := range patternChecks {
			check(s, idx, ln)
		}
	}

	s.checkUnusedImports()
	return s.issues
}

func checkTabIndent(s *styleScan, _ int, ln Line) {
	if strings.HasPrefix(ln.Raw, "\t") {
		s.add(ln.Number, 1, ruleTabIndent,
			"Use 4 spaces for indentation instead of tabs (PEP 8)")
	}
}

func checkIndentWidth(s *styleScan, _ int, ln Line) {
	if ln.Indent > 0 && ln.Indent%4 != 0 {
		s.add(ln.Number, 1, ruleIndentWidth,
			"Indentation should be a multiple of 4 spaces (PEP 8)")
	}
}

func checkLineLength(s *styleScan, _ int, ln Line) {
	if utf8.RuneCountInString(ln.Raw) > maxLineLength {
		s.add(ln.Number, maxLineLength+1, ruleLineLength,
			"Line too long (>79 characters). Consider breaking it up (PEP 8)")
	}
}

func checkTrailingWhitespace(s *styleScan, _ int, ln Line) {
	if strings.HasSuffix(ln.Raw, " ") || strings.HasSuffix(ln.Raw, "\t") {
		s.add(ln.Number, utf8.RuneCountInString(ln.Raw), ruleTrailingWhitespace,
			"Trailing whitespace (PEP 8)")
	}
}

func checkVariableName(s *styleScan, _ int, ln Line) {
	name := ln.AssignTarget
	if !snakeCasePattern.MatchString(name) {
		s.add(ln.Number, column(ln.Trimmed, name), ruleVariableName,
			fmt.Sprintf("Variable '%s' should use snake_case naming (PEP 8)", name))
	}
}

func checkDangerousCall(s *styleScan, _ int, ln Line) {
	if !strings.Contains(ln.AssignValue, "eval(") && !strings.Contains(ln.AssignValue, "exec(") {
		return
	}
	col := column(ln.Trimmed, "eval")
	if !strings.Contains(ln.Trimmed, "eval") {
		col = column(ln.Trimmed, "exec")
	}
	s.add(ln.Number, col, ruleDangerousCall,
		"Use of eval() or exec() is dangerous and should be avoided")
}

func checkSQLInjection(s *styleScan, _ int, ln Line) {
	v := ln.AssignValue
	if strings.Contains(v, "execute(") && strings.Contains(v, "%") && !strings.Contains(v, "?") {
		s.add(ln.Number, 1, ruleSQLInjection,
			"Potential SQL injection risk. Use parameterized queries")
	}
}

func checkFunctionName(s *styleScan, _ int, ln Line) {
	if !snakeCasePattern.MatchString(ln.Name) {
		s.add(ln.Number, column(ln.Trimmed, ln.Name), ruleFunctionName,
			fmt.Sprintf("Function '%s' should use snake_case naming (PEP 8)", ln.Name))
	}
}

// checkDocstring peeks at the physical next line only. The issue is reported
// on that line, where the docstring should be.
func checkDocstring(s *styleScan, idx int, ln Line) {
	if idx+1 < len(s.src.Lines) {
		next := s.src.Lines[idx+1].Trimmed
		if strings.HasPrefix(next, `"""`) || strings.HasPrefix(next, "'''") {
			return
		}
	}
	s.add(ln.Number+1, 1, ruleDocstring,
		fmt.Sprintf("Function '%s' should have a docstring (PEP 257)", ln.Name))
}

func checkClassName(s *styleScan, _ int, ln Line) {
	if !capWordsPattern.MatchString(ln.Name) {
		s.add(ln.Number, column(ln.Trimmed, ln.Name), ruleClassName,
			fmt.Sprintf("Class '%s' should use CapWords naming (PEP 8)", ln.Name))
	}
}

func recordImport(s *styleScan, _ int, ln Line) {
	if !s.seen[ln.Name] {
		s.seen[ln.Name] = true
		s.imports = append(s.imports, importRecord{name: ln.Name, line: ln.Number})
	}

	if strings.Contains(ln.Trimmed, "import *") {
		s.add(ln.Number, column(ln.Trimmed, "*"), ruleWildcardImport,
			"Avoid wildcard imports (import *) as they pollute namespace")
	}
}

func checkBareExcept(s *styleScan, _ int, ln Line) {
	s.add(ln.Number, 1, ruleBareExcept,
		"Bare except clause catches all exceptions. Specify exception types")
}

func checkMutableDefault(s *styleScan, _ int, ln Line) {
	t := ln.Trimmed
	if strings.Contains(t, "def ") && (strings.Contains(t, "=[]") || strings.Contains(t, "={}")) {
		s.add(ln.Number, 1, ruleMutableDefault,
			"Mutable default arguments can cause unexpected behavior")
	}
}

func checkNoneComparison(s *styleScan, _ int, ln Line) {
	t := ln.Trimmed
	if !strings.Contains(t, "== None") && !strings.Contains(t, "!= None") {
		return
	}
	// column of the comparison operator
	col := max(1, strings.Index(t, "None")-3)
	s.add(ln.Number, col, ruleNoneComparison,
		"Use 'is None' or 'is not None' instead of '== None' or '!= None'")
}

func checkIndexIteration(s *styleScan, _ int, ln Line) {
	if strings.Contains(ln.Trimmed, "for ") && strings.Contains(ln.Trimmed, "range(len(") {
		s.add(ln.Number, 1, ruleIndexIteration,
			"Consider using enumerate() instead of range(len())")
	}
}

func checkLoopConcatenation(s *styleScan, _ int, ln Line) {
	t := ln.Trimmed
	inLoop := strings.Contains(t, "for ") || strings.Contains(t, "while ")
	if inLoop && strings.Contains(t, "+=") && strings.Contains(t, `"`) {
		s.add(ln.Number, 1, ruleLoopConcat,
			"String concatenation in loops is inefficient. Use join() or f-strings")
	}
}

// checkUnusedImports is a textual test: a module counts as used when
// "name." or "name(" appears anywhere in the source.
func (s *styleScan) checkUnusedImports() {
	for _, imp := range s.imports {
		if strings.Contains(s.src.Text, imp.name+".") || strings.Contains(s.src.Text, imp.name+"(") {
			continue
		}
		s.add(imp.line, 1, ruleUnusedImport,
			fmt.Sprintf("Import '%s' appears to be unused", imp.name))
	}
}

// column returns the 1-based rune column of sub in s, or 1 when absent
func column(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return 1
	}
	return utf8.RuneCountInString(s[:i]) + 1
}
