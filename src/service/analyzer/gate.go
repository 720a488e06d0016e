package analyzer

import (
	"regexp"
	"strings"

	"pylens/src/util"
)

// ErrNotSupportedLanguage is returned when the input shows no sign of being Python
var ErrNotSupportedLanguage = util.NewError(util.CodeNotSupported, "I can only analyze Python code.")

// GateRule is one acceptance signal of the language gate
type GateRule struct {
	Name  string
	Match func(code string) bool
}

var gateKeywords = []string{
	"def", "class", "import", "from", "if", "elif", "else", "for", "while",
	"try", "except", "with", "as", "lambda", "yield", "return",
}

// Keyword membership is a lower-cased substring test, so "as" matches inside
// ordinary words. The gate is permissive on purpose.
func containsKeyword(code string) bool {
	lower := strings.ToLower(code)
	for _, kw := range gateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func regexRule(name, expr string) GateRule {
	re := regexp.MustCompile(expr)
	return GateRule{Name: name, Match: re.MatchString}
}

func literalRule(name, marker string) GateRule {
	return GateRule{Name: name, Match: func(code string) bool { return strings.Contains(code, marker) }}
}

// GateRules is the acceptance table. Input matching any rule is accepted.
var GateRules = []GateRule{
	{Name: "keyword", Match: containsKeyword},
	regexRule("import-line", `(?m)^import\s+\w+`),
	regexRule("from-import-line", `(?m)^from\s+\w+\s+import`),
	regexRule("def-header", `(?m)^def\s+\w+\s*\(`),
	regexRule("class-header", `(?m)^class\s+\w+`),
	regexRule("comment-line", `(?m)^\s*#.*$`),
	regexRule("print-call", `print\s*\(`),
	regexRule("block-colon", `(?m):\s*$`),
	literalRule("language-name", "python"),
	literalRule("shebang", "#!/usr/bin/env python"),
}

// Accepts reports whether code looks like Python
func Accepts(code string) bool {
	return len(MatchedRules(code)) > 0
}

// MatchedRules returns the names of the gate rules that code satisfies
func MatchedRules(code string) []string {
	var matched []string
	for _, rule := range GateRules {
		if rule.Match(code) {
			matched = append(matched, rule.Name)
		}
	}
	return matched
}
