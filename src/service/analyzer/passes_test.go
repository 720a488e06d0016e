package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/model"
)

func TestNewSource(t *testing.T) {
	src := NewSource("import os\r\nclass Shape:\r    def Area(self):\n\tx = 1\n\n# note")

	require.Len(t, src.Lines, 6)
	assert.NotContains(t, src.Text, "\r")

	want := []struct {
		kind   LineKind
		name   string
		indent int
	}{
		{KindImport, "os", 0},
		{KindClass, "Shape", 0},
		{KindDef, "Area", 4},
		{KindAssignment, "", 1},
		{KindBlank, "", 0},
		{KindComment, "", 0},
	}
	for i, w := range want {
		ln := src.Lines[i]
		assert.Equal(t, i+1, ln.Number)
		assert.Equal(t, w.kind, ln.Kind, "line %d", ln.Number)
		assert.Equal(t, w.name, ln.Name, "line %d", ln.Number)
		assert.Equal(t, w.indent, ln.Indent, "line %d", ln.Number)
	}

	assert.Equal(t, "x", src.Lines[3].AssignTarget)
	assert.Equal(t, "1", src.Lines[3].AssignValue)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"", KindBlank},
		{"# hi", KindComment},
		{"def run(x):", KindDef},
		{"class A(B):", KindClass},
		{"from a import b", KindImport},
		{"import_path = 3", KindAssignment},
		{"if x:", KindIf},
		{"elif y:", KindElif},
		{"while True:", KindWhile},
		{"for a in b:", KindFor},
		{"try:", KindTry},
		{"except:", KindBareExcept},
		{"except ValueError as e:", KindExcept},
		{"return x", KindReturn},
		{"return", KindReturn},
		{"returned = 5", KindAssignment},
		{"x += 1", KindOther},
		{"print(x)", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, _ := classify(tt.line)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

type issueAt struct {
	line   int
	rule   string
	column int
}

func issuesAt(issues []model.Issue) []issueAt {
	var out []issueAt
	for _, i := range issues {
		out = append(out, issueAt{i.Line, i.Rule, i.Column})
	}
	return out
}

func TestCheckStyle(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []issueAt
	}{
		{"tab indent", "if True:\n\tx = 1\n", []issueAt{{2, "PY001", 1}, {2, "PY002", 1}}},
		{"odd indent", "if True:\n  x = 1\n", []issueAt{{2, "PY002", 1}}},
		{"long line", "x = '" + strings.Repeat("a", 80) + "'", []issueAt{{1, "PY003", 80}}},
		{"trailing whitespace", "x = 1   ", []issueAt{{1, "PY004", 8}}},
		{"variable casing", "myVar = 1", []issueAt{{1, "PY005", 1}}},
		{"eval in assignment", "data = eval(text)", []issueAt{{1, "PY006", 8}}},
		{"sql formatting", `rows = cursor.execute("SELECT * FROM t WHERE id = %s" % uid)`, []issueAt{{1, "PY007", 1}}},
		{"sql parameterized", `rows = cursor.execute("SELECT * FROM t WHERE id = ?", (uid,))`, nil},
		{"class casing", "class my_class:", []issueAt{{1, "PY010", 7}}},
		{"wildcard import", "from os import *", []issueAt{{1, "PY011", 16}, {1, "PY017", 1}}},
		{"bare except", "try:\n    pass\nexcept:\n    pass", []issueAt{{3, "PY012", 1}}},
		{"mutable default", "def add(item, items=[]):\n    \"\"\"Add.\"\"\"\n    return items", []issueAt{{1, "PY013", 1}}},
		{"none comparison", "if x == None:\n    pass", []issueAt{{1, "PY014", 5}}},
		{"index iteration", "for i in range(len(items)):\n    pass", []issueAt{{1, "PY015", 1}}},
		{"loop concat", `for w in words: s += "x"`, []issueAt{{1, "PY016", 1}}},
		{"unused import", "import os\nimport sys\nprint(sys.argv)", []issueAt{{1, "PY017", 1}}},
		{"docstring at end of file", "def run():", []issueAt{{2, "PY009", 1}}},
		{"docstring present", "def run():\n    '''Run.'''\n", nil},
		{"blank and comment lines skipped", "    \n# comment   \nprint(1)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, issuesAt(checkStyle(NewSource(tt.code))))
		})
	}
}

func TestCheckStyle_IssueFieldsFollowRule(t *testing.T) {
	for _, issue := range checkStyle(NewSource("from os import *\ndef Bad(x={}):\n  y = eval(x)\n")) {
		rule, ok := RuleByID(issue.Rule)
		require.True(t, ok, issue.Rule)
		assert.Equal(t, rule.Severity, issue.Severity)
		assert.Equal(t, rule.Category, issue.Category)
	}
}

func TestRules_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules {
		assert.False(t, seen[r.ID], "duplicate rule %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Summary)
	}
	_, ok := RuleByID("PY999")
	assert.False(t, ok)
	assert.Len(t, Penalties(), len(performanceRules)+len(securityRules))
}

func TestEdgeCases(t *testing.T) {
	tests := []struct {
		cond string
		want []string
	}{
		{"a == b and c in items", []string{tagEquality, tagBooleanLogic, tagMembership}},
		{"len(items) > 0", []string{tagEmptyCollection}},
		{"x != y or z", []string{tagEquality, tagBooleanLogic}},
		{"index > 0", []string{}},
		{"order > 1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			assert.Equal(t, tt.want, edgeCases(tt.cond))
		})
	}
}

func TestBranchLiterals(t *testing.T) {
	tests := []struct {
		cond        string
		alwaysTrue  bool
		alwaysFalse bool
	}{
		{"True", true, false},
		{"42", true, false},
		{"1", true, false},
		{"False", false, true},
		{"0", false, true},
		{"00", false, true},
		{"None", false, true},
		{"[]", false, true},
		{"{}", false, true},
		{"x", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			assert.Equal(t, tt.alwaysTrue, isAlwaysTrue(tt.cond))
			assert.Equal(t, tt.alwaysFalse, isAlwaysFalse(tt.cond))
		})
	}
}

func TestExtractControlFlow_Loops(t *testing.T) {
	cf := extractControlFlow(NewSource("for i in range(len(items)):\n    pass\nwhile 1:\n    pass\nwhile n > 0:\n    n -= 1\n"))

	require.Len(t, cf.Loops, 3)
	assert.Equal(t, model.Loop{
		Line:            1,
		Kind:            model.LoopFor,
		Condition:       "i in range(len(items))",
		PotentialIssues: []string{tagInefficientPattern},
	}, cf.Loops[0])
	assert.Equal(t, []string{tagInfiniteLoop}, cf.Loops[1].PotentialIssues)
	assert.Empty(t, cf.Loops[2].PotentialIssues)

	require.Len(t, cf.PotentialInfiniteLoops, 1)
	assert.Equal(t, 3, cf.PotentialInfiniteLoops[0].Line)
	assert.Empty(t, cf.Branches)
}

func TestApproximateDataFlow(t *testing.T) {
	t.Run("unused and used", func(t *testing.T) {
		df := approximateDataFlow(NewSource("count = 0\ntotal = 5\nprint(total)\n"), SubstringMatcher{})
		assert.Equal(t, []string{"count"}, df.UnusedVariables)
		assert.Equal(t, []model.VariableRecord{
			{Name: "count", Declared: 1, LastUsed: 1, Scope: "global"},
			{Name: "total", Declared: 2, LastUsed: 3, Scope: "global"},
		}, df.VariableLifetime)
		assert.Empty(t, df.ResourceLeaks)
	})

	t.Run("substring counts as use", func(t *testing.T) {
		df := approximateDataFlow(NewSource("name = 1\nnames = []\nprint(names)\n"), SubstringMatcher{})
		assert.NotContains(t, df.UnusedVariables, "name")
	})

	t.Run("reassignment overwrites", func(t *testing.T) {
		df := approximateDataFlow(NewSource("def f():\n    v = 1\n    print(v)\nv = 2\n"), SubstringMatcher{})
		require.Len(t, df.VariableLifetime, 1)
		assert.Equal(t, model.VariableRecord{Name: "v", Declared: 4, LastUsed: 4, Scope: "global"}, df.VariableLifetime[0])
		assert.Equal(t, []string{"v"}, df.UnusedVariables)
	})

	t.Run("local scope", func(t *testing.T) {
		df := approximateDataFlow(NewSource("def f():\n    local_v = 1\n"), SubstringMatcher{})
		require.Len(t, df.VariableLifetime, 1)
		assert.Equal(t, "local", df.VariableLifetime[0].Scope)
	})

	t.Run("resource leak", func(t *testing.T) {
		df := approximateDataFlow(NewSource("f = open('data.txt')\nprint(f.read())\n"), SubstringMatcher{})
		require.Len(t, df.ResourceLeaks, 1)
		assert.Equal(t, model.CodeLocation{
			Line:        1,
			Column:      5,
			Description: "File opened but not properly closed. Use context manager (with statement)",
		}, df.ResourceLeaks[0])
	})

	t.Run("closed handle", func(t *testing.T) {
		df := approximateDataFlow(NewSource("f = open('a')\nf.close()\n"), SubstringMatcher{})
		assert.Empty(t, df.ResourceLeaks)
	})
}

func TestScoreQuality_Penalties(t *testing.T) {
	src := NewSource(strings.Join([]string{
		"data = pickle.load(fh)",
		"subprocess.run(cmd, shell=True)",
		"os.system('ls')",
		"n = int(input())",
		"items = list(range(10))",
		"result = [x for x in items]; out.append(1) if True else None; [out.append(i) for i in items]",
	}, "\n"))

	q := scoreQuality(src, model.ComplexityMetrics{CyclomaticComplexity: 1}, nil)
	assert.Equal(t, 100-20-25-20, q.Security)
	assert.Equal(t, 100-3-8, q.Performance)
}
