package analyzer

import "pylens/src/model"

// Rule describes one style check
type Rule struct {
	ID       string
	Category model.Category
	Severity model.Severity
	Summary  string
}

var (
	ruleTabIndent = Rule{"PY001", model.CategoryStyle, model.SeverityWarning,
		"Indentation uses tabs"}
	ruleIndentWidth = Rule{"PY002", model.CategoryStyle, model.SeverityWarning,
		"Indentation is not a multiple of 4 spaces"}
	ruleLineLength = Rule{"PY003", model.CategoryStyle, model.SeverityInfo,
		"Line longer than 79 characters"}
	ruleTrailingWhitespace = Rule{"PY004", model.CategoryStyle, model.SeverityInfo,
		"Trailing whitespace"}
	ruleVariableName = Rule{"PY005", model.CategoryStyle, model.SeverityWarning,
		"Assigned variable is not snake_case"}
	ruleDangerousCall = Rule{"PY006", model.CategorySecurity, model.SeverityError,
		"eval() or exec() on the right-hand side of an assignment"}
	ruleSQLInjection = Rule{"PY007", model.CategorySecurity, model.SeverityWarning,
		"execute() with %-formatting and no parameter placeholder"}
	ruleFunctionName = Rule{"PY008", model.CategoryStyle, model.SeverityWarning,
		"Function name is not snake_case"}
	ruleDocstring = Rule{"PY009", model.CategoryDocumentation, model.SeverityInfo,
		"Function has no docstring on the following line"}
	ruleClassName = Rule{"PY010", model.CategoryStyle, model.SeverityWarning,
		"Class name is not CapWords"}
	ruleWildcardImport = Rule{"PY011", model.CategoryBestPractice, model.SeverityWarning,
		"Wildcard import"}
	ruleBareExcept = Rule{"PY012", model.CategoryBestPractice, model.SeverityWarning,
		"Bare except clause"}
	ruleMutableDefault = Rule{"PY013", model.CategoryBug, model.SeverityError,
		"Mutable default argument"}
	ruleNoneComparison = Rule{"PY014", model.CategoryBestPractice, model.SeverityWarning,
		"Equality comparison against None"}
	ruleIndexIteration = Rule{"PY015", model.CategoryPerformance, model.SeverityInfo,
		"Loop over range(len(...))"}
	ruleLoopConcat = Rule{"PY016", model.CategoryPerformance, model.SeverityWarning,
		"String concatenation inside a loop header"}
	ruleUnusedImport = Rule{"PY017", model.CategoryUnused, model.SeverityInfo,
		"Imported module never used as name. or name("}
)

// Rules lists every style rule in check order
var Rules = []Rule{
	ruleTabIndent, ruleIndentWidth, ruleLineLength, ruleTrailingWhitespace,
	ruleVariableName, ruleDangerousCall, ruleSQLInjection,
	ruleFunctionName, ruleDocstring, ruleClassName, ruleWildcardImport,
	ruleBareExcept, ruleMutableDefault, ruleNoneComparison,
	ruleIndexIteration, ruleLoopConcat, ruleUnusedImport,
}

// RuleByID looks up a rule
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// PenaltyInfo describes one quality score deduction
type PenaltyInfo struct {
	Dimension string
	Name      string
	Penalty   int
}

// Penalties lists the performance and security deductions
func Penalties() []PenaltyInfo {
	var out []PenaltyInfo
	for _, r := range performanceRules {
		out = append(out, PenaltyInfo{Dimension: "performance", Name: r.name, Penalty: r.penalty})
	}
	for _, r := range securityRules {
		out = append(out, PenaltyInfo{Dimension: "security", Name: r.name, Penalty: r.penalty})
	}
	return out
}
