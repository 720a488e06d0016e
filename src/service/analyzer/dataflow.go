package analyzer

import (
	"strings"

	"pylens/src/model"
)

// UsageMatcher decides whether a line mentions a tracked variable
type UsageMatcher interface {
	Mentions(line, name string) bool
}

// SubstringMatcher is the textual usage test: the line contains the name
// and is not an assignment to it. A name that is a substring of another
// identifier counts as used, and scope is not modelled.
type SubstringMatcher struct{}

func (SubstringMatcher) Mentions(line, name string) bool {
	return strings.Contains(line, name) && !strings.Contains(line, name+" =")
}

const (
	scopeGlobal = "global"
	scopeLocal  = "local"
)

type variableState struct {
	name     string
	declared int
	lastUsed int
	scope    string
}

func approximateDataFlow(src *Source, usage UsageMatcher) model.DataFlow {
	df := model.DataFlow{
		UnusedVariables:  []string{},
		VariableLifetime: []model.VariableRecord{},
		ResourceLeaks:    []model.CodeLocation{},
	}

	// ordered by first declaration
	var tracked []*variableState
	byName := make(map[string]*variableState)

	scoped := strings.Contains(src.Text, "with ") || strings.Contains(src.Text, ".close()")

	for _, ln := range src.Lines {
		if ln.Kind == KindAssignment {
			scope := scopeLocal
			if ln.Indent == 0 {
				scope = scopeGlobal
			}
			st, ok := byName[ln.AssignTarget]
			if !ok {
				st = &variableState{name: ln.AssignTarget}
				byName[ln.AssignTarget] = st
				tracked = append(tracked, st)
			}
			st.declared, st.lastUsed, st.scope = ln.Number, ln.Number, scope
		}

		for _, st := range tracked {
			if usage.Mentions(ln.Raw, st.name) {
				st.lastUsed = ln.Number
			}
		}

		if !scoped && strings.Contains(ln.Trimmed, "open(") {
			df.ResourceLeaks = append(df.ResourceLeaks, model.CodeLocation{
				Line:        ln.Number,
				Column:      column(ln.Trimmed, "open("),
				Description: "File opened but not properly closed. Use context manager (with statement)",
			})
		}
	}

	for _, st := range tracked {
		if st.lastUsed == st.declared {
			df.UnusedVariables = append(df.UnusedVariables, st.name)
		}
		df.VariableLifetime = append(df.VariableLifetime, model.VariableRecord{
			Name:     st.name,
			Declared: st.declared,
			LastUsed: st.lastUsed,
			Scope:    st.scope,
		})
	}

	return df
}
