package controller

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/service/history"
	"pylens/src/service/metrics"
	"pylens/src/service/report"
	"pylens/src/service/runner"
	"pylens/src/util"
)

const (
	cleanCode = "def add(a, b):\n    return a + b\n"
	riskyCode = "def Load(x=[]):\n    return eval(x)\n"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.OutputDir = t.TempDir()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

func TestAnalysisController_Analyze(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.py"), []byte(cleanCode), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "risky.py"), []byte(riskyCode), 0o644))

	store, err := history.Open(cfg.History.Path)
	require.NoError(t, err)
	defer store.Close()

	reg := prometheus.NewRegistry()
	c := NewAnalysisController(cfg, WithHistory(store), WithRecorder(metrics.NewRecorder(reg)))

	batch, err := c.Analyze(context.Background(), AnalyzeRequest{
		Paths:  []string{dir},
		Inputs: []runner.Input{runner.InlineInput("<prose>", "plain words here")},
	})
	require.NoError(t, err)

	s := batch.Summary
	assert.Equal(t, 3, s.TotalFiles)
	assert.Equal(t, 2, s.AnalyzedFiles)
	assert.Equal(t, 1, s.UnsupportedFiles)
	assert.Equal(t, 0, s.FailedFiles)
	assert.Equal(t, "<prose>", batch.Files[0].Path)
	assert.Positive(t, s.BySeverity[model.SeverityError])
	assert.Positive(t, s.ByCategory[model.CategoryBug])
	assert.Less(t, s.AverageScores.Security, 100.0)

	total := 0
	for _, n := range s.BySeverity {
		total += n
	}
	assert.Equal(t, s.TotalIssues, total)

	records, err := store.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	count, err := testutil.GatherAndCount(reg, "pylens_analyses_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAnalysisController_SkipHistory(t *testing.T) {
	cfg := testConfig(t)
	store, err := history.Open(cfg.History.Path)
	require.NoError(t, err)
	defer store.Close()

	c := NewAnalysisController(cfg, WithHistory(store))
	_, err = c.Analyze(context.Background(), AnalyzeRequest{
		Inputs:      []runner.Input{runner.InlineInput("<inline>", cleanCode)},
		SkipHistory: true,
	})
	require.NoError(t, err)

	records, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnalysisController_NothingToAnalyze(t *testing.T) {
	_, err := NewAnalysisController(testConfig(t)).Analyze(context.Background(), AnalyzeRequest{})
	assert.True(t, util.IsCode(err, util.CodeValidationError))
}

func TestGenerateSummary_Empty(t *testing.T) {
	s := generateSummary(nil)
	assert.Zero(t, s.TotalFiles)
	assert.Equal(t, model.AverageScores{}, s.AverageScores)
	assert.NotNil(t, s.BySeverity)
}

func TestReportController_GenerateReports(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Formats = []string{"json", "markdown", "sarif", "text"}

	batch, err := NewAnalysisController(cfg).Analyze(context.Background(), AnalyzeRequest{
		Inputs: []runner.Input{runner.InlineInput("snippet.py", riskyCode)},
	})
	require.NoError(t, err)

	paths, err := NewReportController(cfg).GenerateReports(batch)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(cfg.Output.OutputDir, "pylens-report.json"), paths[0])
	assert.Equal(t, filepath.Join(cfg.Output.OutputDir, "pylens-report.md"), paths[1])
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}

func TestReportController_Export(t *testing.T) {
	cfg := testConfig(t)
	batch, err := NewAnalysisController(cfg).Analyze(context.Background(), AnalyzeRequest{
		Inputs: []runner.Input{runner.InlineInput("snippet.py", cleanCode)},
	})
	require.NoError(t, err)

	path, err := NewReportController(cfg).Export("", cleanCode, batch.Files[0].Report)
	require.NoError(t, err)
	assert.Equal(t, cfg.Output.OutputDir, filepath.Dir(path))

	doc, err := report.ReadExport(path)
	require.NoError(t, err)
	assert.Equal(t, cleanCode, doc.Code)
}

func TestWatchController_Handle(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(file, []byte(cleanCode), 0o644))

	var out bytes.Buffer
	wc := NewWatchController(NewAnalysisController(cfg), NewReportController(cfg), WatchOptions{Out: &out})
	wc.Handle(context.Background(), []string{file})
	assert.Contains(t, out.String(), "app.py")

	out.Reset()
	wc.Handle(context.Background(), []string{filepath.Join(dir, "gone.py")})
	assert.Empty(t, out.String())
}
