package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/model"
	"pylens/src/service/analyzer"
	"pylens/src/service/history"
)

const snippet = "def add(a, b):\n    return a + b\n\nprint(add(1, 2))\n"

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	h := New()
	var out, errOut bytes.Buffer
	h.rootCmd.SetOut(&out)
	h.rootCmd.SetErr(&errOut)
	h.rootCmd.SetIn(strings.NewReader(stdin))
	h.rootCmd.SetArgs(args)

	err := h.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pylens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAnalyze_InlineJSON(t *testing.T) {
	res := execute(t, "", "analyze", "--code", snippet, "-f", "json")
	require.NoError(t, res.err)

	var batch model.BatchReport
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &batch))
	require.Len(t, batch.Files, 1)
	assert.Equal(t, "<inline>", batch.Files[0].Path)
	require.NotNil(t, batch.Files[0].Report)
	assert.Equal(t, "python", batch.Files[0].Report.Language)
	assert.Contains(t, res.stderr, "Analysis complete")
}

func TestAnalyze_Unsupported(t *testing.T) {
	res := execute(t, "", "analyze", "--code", "plain words here")
	assert.ErrorIs(t, res.err, analyzer.ErrNotSupportedLanguage)
}

func TestAnalyze_NothingToDo(t *testing.T) {
	res := execute(t, "", "analyze")
	assert.ErrorContains(t, res.err, "nothing to analyze")
}

func TestAnalyze_StdinAndSample(t *testing.T) {
	res := execute(t, snippet, "analyze", "--stdin", "--sample", "hello-world", "-f", "text")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<stdin>")
	assert.Contains(t, res.stdout, "sample:hello-world")

	res = execute(t, "", "analyze", "--sample", "missing")
	assert.Error(t, res.err)
}

func TestAnalyze_WritesReports(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.py"), []byte(snippet), 0o644))
	out := t.TempDir()

	res := execute(t, "", "analyze", src, "-o", out, "-f", "markdown")
	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(out, "pylens-report.md"))
	assert.Contains(t, res.stdout, "Report written to")
}

func TestAnalyze_Export(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, "", "analyze", "--code", snippet, "--export", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Analysis exported to")

	matches, err := filepath.Glob(filepath.Join(dir, "python-analysis-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	src := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(src, []byte(snippet), 0o644))
	res = execute(t, "", "analyze", src, "--code", snippet, "--export", dir)
	assert.ErrorContains(t, res.err, "exactly one")
}

func TestHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfgPath := writeConfig(t, "history:\n  enabled: true\n  path: "+dbPath+"\n")

	require.NoError(t, execute(t, "", "-c", cfgPath, "analyze", "--code", snippet).err)
	require.NoError(t, execute(t, "", "-c", cfgPath, "analyze", "--code", snippet, "--no-history").err)

	res := execute(t, "", "-c", cfgPath, "history", "--json")
	require.NoError(t, res.err)

	var records []history.Record
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "<inline>", records[0].Source)

	res = execute(t, "", "-c", cfgPath, "history")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<inline>")
}

func TestSamples(t *testing.T) {
	res := execute(t, "", "samples")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "hello-world")

	res = execute(t, "", "samples", "list", "--difficulty", "advanced")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "hello-world")

	res = execute(t, "", "samples", "show", "hello-world")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "print(")

	res = execute(t, "", "samples", "--difficulty", "expert")
	assert.Error(t, res.err)
}

func TestRulesAndVersion(t *testing.T) {
	res := execute(t, "", "rules")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "PY001")
	assert.Contains(t, res.stdout, "-30")

	res = execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "pylens 1.0.0\n", res.stdout)
}
