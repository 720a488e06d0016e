package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

// Line is one line of source with its shape classified up front so every
// pass dispatches on Kind instead of re-testing patterns.
type Line struct {
	Number  int // 1-based
	Raw     string
	Trimmed string
	Indent  int // leading whitespace width in characters
	Kind    LineKind

	// Name is the defined function/class name or the imported module name
	// for KindDef, KindClass and KindImport lines.
	Name string

	// AssignTarget and AssignValue are set for KindAssignment lines.
	AssignTarget string
	AssignValue  string
}

// IndentLevel is the nesting proxy: indentation width in units of 4.
func (l Line) IndentLevel() int {
	return l.Indent / 4
}

// IsCode reports whether the line is neither blank nor a comment.
func (l Line) IsCode() bool {
	return l.Kind != KindBlank && l.Kind != KindComment
}

// Source is the raw input and its line-split form. Index i holds line i+1.
type Source struct {
	Text  string
	Lines []Line
}

var assignmentPattern = regexp.MustCompile(`^(\w+)\s*=\s*(.+)`)

// NewSource normalizes line endings and indexes the input.
func NewSource(code string) *Source {
	text := strings.ReplaceAll(code, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	rawLines := strings.Split(text, "\n")
	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = indexLine(i+1, raw)
	}

	return &Source{Text: text, Lines: lines}
}

func indexLine(number int, raw string) Line {
	trimmed := strings.TrimSpace(raw)
	rest := strings.TrimLeftFunc(raw, unicode.IsSpace)

	ln := Line{
		Number:  number,
		Raw:     raw,
		Trimmed: trimmed,
		Indent:  len([]rune(raw)) - len([]rune(rest)),
	}
	ln.Kind, ln.Name = classify(trimmed)

	if ln.Kind == KindAssignment {
		m := assignmentPattern.FindStringSubmatch(trimmed)
		ln.AssignTarget, ln.AssignValue = m[1], m[2]
	}

	return ln
}

// nextCodeLine returns the index of the first code line after index i, or -1.
func (s *Source) nextCodeLine(i int) int {
	for j := i + 1; j < len(s.Lines); j++ {
		if s.Lines[j].IsCode() {
			return j
		}
	}
	return -1
}

// lastCodeLine returns the index of the last code line, or -1.
func (s *Source) lastCodeLine() int {
	for i := len(s.Lines) - 1; i >= 0; i-- {
		if s.Lines[i].IsCode() {
			return i
		}
	}
	return -1
}
