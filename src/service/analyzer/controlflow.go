package analyzer

import (
	"regexp"
	"strings"

	"pylens/src/model"
)

const (
	tagEquality        = "equality comparison"
	tagBooleanLogic    = "complex boolean logic"
	tagEmptyCollection = "empty collection check"
	tagMembership      = "membership test"

	tagInfiniteLoop       = "potential infinite loop"
	tagInefficientPattern = "inefficient iteration pattern"
)

var (
	conditionPatterns = map[LineKind]*regexp.Regexp{
		KindIf:    regexp.MustCompile(`^if\s+(.+?):`),
		KindWhile: regexp.MustCompile(`^while\s+(.+?):`),
		KindFor:   regexp.MustCompile(`^for\s+(.+?):`),
	}

	digitsPattern     = regexp.MustCompile(`^\d+$`)
	booleanOpPattern  = regexp.MustCompile(`\b(and|or)\b`)
	membershipPattern = regexp.MustCompile(`\bin\b`)
)

// edgeCaseRule attaches a tag to a branch condition
type edgeCaseRule struct {
	tag   string
	match func(cond string) bool
}

var edgeCaseRules = []edgeCaseRule{
	{tagEquality, func(c string) bool { return strings.Contains(c, "==") || strings.Contains(c, "!=") }},
	{tagBooleanLogic, booleanOpPattern.MatchString},
	{tagEmptyCollection, func(c string) bool { return strings.Contains(c, "len(") }},
	{tagMembership, membershipPattern.MatchString},
}

func extractControlFlow(src *Source) model.ControlFlow {
	cf := model.ControlFlow{
		Branches:               []model.Branch{},
		Loops:                  []model.Loop{},
		UnreachableCode:        []model.CodeLocation{},
		PotentialInfiniteLoops: []model.CodeLocation{},
	}

	for idx, ln := range src.Lines {
		switch ln.Kind {
		case KindIf:
			cond := extractCondition(ln)
			cf.Branches = append(cf.Branches, model.Branch{
				Line:        ln.Number,
				Kind:        model.BranchIf,
				Condition:   cond,
				AlwaysTrue:  isAlwaysTrue(cond),
				AlwaysFalse: isAlwaysFalse(cond),
				EdgeCases:   edgeCases(cond),
			})

		case KindWhile:
			cond := extractCondition(ln)
			cf.Loops = append(cf.Loops, model.Loop{
				Line:            ln.Number,
				Kind:            model.LoopWhile,
				Condition:       cond,
				PotentialIssues: loopIssues(model.LoopWhile, cond),
			})
			if isTrueLiteral(cond) {
				cf.PotentialInfiniteLoops = append(cf.PotentialInfiniteLoops, model.CodeLocation{
					Line:        ln.Number,
					Column:      1,
					Description: "Potential infinite loop with always-true condition",
				})
			}

		case KindFor:
			cond := extractCondition(ln)
			cf.Loops = append(cf.Loops, model.Loop{
				Line:            ln.Number,
				Kind:            model.LoopFor,
				Condition:       cond,
				PotentialIssues: loopIssues(model.LoopFor, cond),
			})

		case KindReturn:
			if loc, ok := unreachableAfter(src, idx); ok {
				cf.UnreachableCode = append(cf.UnreachableCode, loc)
			}
		}
	}

	return cf
}

// extractCondition returns the text between the keyword and the first colon
func extractCondition(ln Line) string {
	re, ok := conditionPatterns[ln.Kind]
	if !ok {
		return ""
	}
	if m := re.FindStringSubmatch(ln.Trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func isTrueLiteral(cond string) bool {
	return cond == "True" || cond == "1"
}

func isAlwaysTrue(cond string) bool {
	if cond == "True" {
		return true
	}
	return digitsPattern.MatchString(cond) && strings.Trim(cond, "0") != ""
}

func isAlwaysFalse(cond string) bool {
	switch cond {
	case "False", "None", "[]", "{}":
		return true
	}
	return digitsPattern.MatchString(cond) && strings.Trim(cond, "0") == ""
}

func edgeCases(cond string) []string {
	tags := []string{}
	for _, rule := range edgeCaseRules {
		if rule.match(cond) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

func loopIssues(kind model.LoopKind, cond string) []string {
	issues := []string{}
	if kind == model.LoopWhile && isTrueLiteral(cond) {
		issues = append(issues, tagInfiniteLoop)
	}
	if strings.Contains(cond, "len(") && strings.Contains(cond, "range(") {
		issues = append(issues, tagInefficientPattern)
	}
	return issues
}

// unreachableAfter looks one statement past the return at idx. Blank and
// comment lines are skipped; a def or class header ends the search.
func unreachableAfter(src *Source, idx int) (model.CodeLocation, bool) {
	next := src.nextCodeLine(idx)
	if next < 0 {
		return model.CodeLocation{}, false
	}

	ln := src.Lines[next]
	if ln.Kind == KindDef || ln.Kind == KindClass {
		return model.CodeLocation{}, false
	}
	if ln.Indent < src.Lines[idx].Indent {
		return model.CodeLocation{}, false
	}

	return model.CodeLocation{
		Line:        ln.Number,
		Column:      1,
		Description: "Code after return statement is unreachable",
	}, true
}
