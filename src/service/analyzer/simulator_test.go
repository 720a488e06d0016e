package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/model"
)

func simulate(code string) model.ExecutionPrediction {
	return simulateExecution(NewSource(code), nil)
}

func TestSimulator_PrintResolution(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"string literal", `print('hello')`, "hello"},
		{"f-string", `print(f"Hello {name}, you have {user.count} items")`, "Hello <name>, you have <user.count> items"},
		{"f-string other field", `print(f"{a + b}")`, "{a + b}"},
		{"addition", "print(2 + 3)", "5"},
		{"division", "print(7 / 2)", "3.5"},
		{"subtraction", "print(10 - 4)", "6"},
		{"float", "print(1.5 * 2)", "3"},
		{"division by zero", "print(1 / 0)", "<1 / 0>"},
		{"non-numeric expression", "print(a + b)", "<a + b>"},
		{"len", "print(len(items))", "<length>"},
		{"str", "print(str(5))", "<string>"},
		{"int", "print(int(x))", "<integer>"},
		{"small range", "print(range(5))", "range(0, 5)"},
		{"large range", "print(range(50))", "<range object>"},
		{"other call", "print(total(x))", "<total(x)>"},
		{"number variable", "n = 42\nprint(n)", "42"},
		{"list variable", "items = [1, 2]\nprint(items)", "[1, 2]"},
		{"dict variable", "d = {'a': 1}\nprint(d)", "{'a': 1}"},
		{"alias chain", "a = 'hello'\nb = a\nc = b\nprint(c)", "hello"},
		{"latest assignment wins", "x = 'one'\nx = 'two'\nprint(x)", "two"},
		{"assignment after print ignored", "print(x)\nx = 1", "<x>"},
		{"unknown variable", "print(missing)", "<missing>"},
		{"expression value", "y = compute()\nprint(y)", "<compute()>"},
		{"several prints", "print('a')\nprint('b')", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := simulate(tt.code)
			assert.True(t, pred.CanExecute)
			assert.Equal(t, tt.want, pred.Output)
			assert.Equal(t, tt.want != "", pred.HasOutput)
		})
	}
}

func TestSimulator_AliasCycle(t *testing.T) {
	pred := simulate("a = b\nb = a\nprint(b)")
	assert.True(t, strings.HasPrefix(pred.Output, "<"))
}

func TestSimulator_BareExpression(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"identifier", "# compute\nx = 2\nx\n", "2"},
		{"arithmetic", "# sum\n3 * 4\n\n# done", "12"},
		{"after prints", "print('start')\n6 / 3", "start\n2"},
		{"statement keyword", "def f():\n    pass", ""},
		{"return", "def f():\n    return 1", ""},
		{"block header", "for i in x:", ""},
		{"else header", "if a:\n    pass\nelse:", ""},
		{"assignment", "x = 1", ""},
		{"import", "import os", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simulate(tt.code).Output)
		})
	}
}

func TestSimulator_Warnings(t *testing.T) {
	pred := simulate("import time\nimport random\nname = input()\ntime.sleep(1)\nprint(random.random())\nfh = open('x')\n")
	assert.Equal(t, []string{
		"Code contains input() calls - interactive input required",
		"Code contains sleep() calls - execution may be delayed",
		"Code uses random functions - output may vary between runs",
		"Code performs file operations - ensure files exist",
	}, pred.Warnings)
	assert.True(t, pred.CanExecute)
}

func TestSimulator_FatalIssues(t *testing.T) {
	src := NewSource("# read\nx = eval(input())\nprint('never')\n")
	issues := checkStyle(src)

	pred := simulateExecution(src, issues)
	assert.False(t, pred.CanExecute)
	assert.False(t, pred.HasOutput)
	assert.Empty(t, pred.Output)
	assert.Equal(t, []string{"Line 2: Use of eval() or exec() is dangerous and should be avoided"}, pred.Errors)
	assert.Equal(t, []string{"Code contains input() calls - interactive input required"}, pred.Warnings)
	assert.GreaterOrEqual(t, pred.ExecutionTime, 0.0)
}

func TestEvalArithmetic(t *testing.T) {
	v, ok := evalArithmetic("0.1 + 0.2")
	require.True(t, ok)
	assert.Equal(t, "0.30000000000000004", v)

	_, ok = evalArithmetic("1 + 2 + 3")
	assert.False(t, ok)
	_, ok = evalArithmetic("-1 + 2")
	assert.False(t, ok)
}
