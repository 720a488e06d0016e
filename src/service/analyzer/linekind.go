package analyzer

import (
	"regexp"
	"strings"
)

// LineKind is the shape of a source line
type LineKind int

const (
	KindBlank LineKind = iota
	KindComment
	KindDef
	KindClass
	KindImport
	KindIf
	KindElif
	KindWhile
	KindFor
	KindTry
	KindBareExcept
	KindExcept
	KindReturn
	KindAssignment
	KindOther
)

var lineKindNames = map[LineKind]string{
	KindBlank:      "blank",
	KindComment:    "comment",
	KindDef:        "def",
	KindClass:      "class",
	KindImport:     "import",
	KindIf:         "if",
	KindElif:       "elif",
	KindWhile:      "while",
	KindFor:        "for",
	KindTry:        "try",
	KindBareExcept: "bare-except",
	KindExcept:     "except",
	KindReturn:     "return",
	KindAssignment: "assignment",
	KindOther:      "other",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsBlockHeader reports whether the kind opens a definition or control block.
func (k LineKind) IsBlockHeader() bool {
	switch k {
	case KindDef, KindClass, KindIf, KindElif, KindWhile, KindFor, KindTry, KindBareExcept, KindExcept:
		return true
	}
	return false
}

var (
	defPattern    = regexp.MustCompile(`^def\s+(\w+)\s*\(`)
	classPattern  = regexp.MustCompile(`^class\s+(\w+)`)
	importPattern = regexp.MustCompile(`^(?:import|from)\s+(\w+)`)
	returnPattern = regexp.MustCompile(`^return\b`)
)

// lineClassifier maps a trimmed line to a kind. name extracts the header
// name for kinds that carry one.
type lineClassifier struct {
	kind  LineKind
	match func(trimmed string) bool
	name  func(trimmed string) string
}

func prefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

func submatch(re *regexp.Regexp) func(string) string {
	return func(s string) string {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1]
		}
		return ""
	}
}

// lineClassifiers is evaluated in order; the first match wins.
var lineClassifiers = []lineClassifier{
	{kind: KindBlank, match: func(s string) bool { return s == "" }},
	{kind: KindComment, match: prefix("#")},
	{kind: KindDef, match: defPattern.MatchString, name: submatch(defPattern)},
	{kind: KindClass, match: classPattern.MatchString, name: submatch(classPattern)},
	{kind: KindImport, match: importPattern.MatchString, name: submatch(importPattern)},
	{kind: KindIf, match: prefix("if ")},
	{kind: KindElif, match: prefix("elif ")},
	{kind: KindWhile, match: prefix("while ")},
	{kind: KindFor, match: prefix("for ")},
	{kind: KindTry, match: prefix("try:")},
	{kind: KindBareExcept, match: func(s string) bool { return s == "except:" }},
	{kind: KindExcept, match: prefix("except ")},
	{kind: KindReturn, match: returnPattern.MatchString},
	{kind: KindAssignment, match: assignmentPattern.MatchString},
}

func classify(trimmed string) (LineKind, string) {
	for _, c := range lineClassifiers {
		if !c.match(trimmed) {
			continue
		}
		if c.name != nil {
			return c.kind, c.name(trimmed)
		}
		return c.kind, ""
	}
	return KindOther, ""
}
