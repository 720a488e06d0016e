package controller

import (
	"context"
	"time"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/service/analyzer"
	"pylens/src/service/history"
	"pylens/src/service/metrics"
	"pylens/src/service/runner"
	"pylens/src/util"
)

// AnalysisController orchestrates batch analysis
type AnalysisController struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	history  *history.Store
	recorder *metrics.Recorder
}

// Option configures an AnalysisController
type Option func(*AnalysisController)

// WithHistory records every successful analysis in store
func WithHistory(store *history.Store) Option {
	return func(c *AnalysisController) { c.history = store }
}

// WithRecorder records metrics for every analyzed input
func WithRecorder(rec *metrics.Recorder) Option {
	return func(c *AnalysisController) { c.recorder = rec }
}

// WithAnalyzer replaces the default analyzer
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(c *AnalysisController) { c.analyzer = a }
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(cfg *config.Config, opts ...Option) *AnalysisController {
	c := &AnalysisController{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.analyzer == nil {
		c.analyzer = analyzer.New()
	}
	return c
}

// AnalyzeRequest describes what to analyze
type AnalyzeRequest struct {
	Paths       []string       // files or directories
	Inputs      []runner.Input // in-memory inputs, analyzed before Paths
	SkipHistory bool
}

// Analyze runs the full analysis pipeline
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) (*model.BatchReport, error) {
	startTime := time.Now()

	inputs := append([]runner.Input(nil), req.Inputs...)
	if len(req.Paths) > 0 {
		files, err := runner.CollectFiles(req.Paths, util.NewExclusionMatcher(c.cfg.Exclusions))
		if err != nil {
			return nil, err
		}
		util.Debug("Collected %d file(s) from %d path(s)", len(files), len(req.Paths))
		inputs = append(inputs, runner.FileInputs(files)...)
	}
	if len(inputs) == 0 {
		return nil, util.NewError(util.CodeValidationError, "nothing to analyze")
	}

	r := runner.NewRunner(c.analyzer, c.cfg.Concurrency, c.observe)
	files, err := r.Run(ctx, inputs)
	if err != nil {
		return nil, err
	}

	generatedAt := time.Now().UTC()
	if !req.SkipHistory {
		c.saveHistory(files, generatedAt)
	}

	report := &model.BatchReport{
		GeneratedAt: generatedAt,
		Summary:     generateSummary(files),
		Files:       files,
	}

	util.Info("Analysis complete: %d analyzed, %d unsupported, %d failed, %d issues (took %v)",
		report.Summary.AnalyzedFiles, report.Summary.UnsupportedFiles, report.Summary.FailedFiles,
		report.Summary.TotalIssues, time.Since(startTime))

	return report, nil
}

func (c *AnalysisController) observe(_ runner.Input, result model.FileReport, elapsed time.Duration) {
	switch {
	case result.Unsupported:
		c.recorder.Observe(metrics.OutcomeUnsupported, elapsed, nil)
	case result.Report == nil:
		c.recorder.Observe(metrics.OutcomeFailed, elapsed, nil)
	default:
		c.recorder.Observe(metrics.OutcomeAnalyzed, elapsed, result.Report)
	}
}

// History write failures never fail the analysis
func (c *AnalysisController) saveHistory(files []model.FileReport, at time.Time) {
	if c.history == nil {
		return
	}

	saved := 0
	for _, f := range files {
		if f.Report == nil {
			continue
		}
		if _, err := c.history.Save(history.NewRecord(f.Path, f.Report, at)); err != nil {
			util.Warn("Failed to record history for %s: %v", f.Path, err)
			continue
		}
		saved++
	}
	util.Debug("Recorded %d analysis summaries in %s", saved, c.history.Path())
}

func generateSummary(files []model.FileReport) model.BatchSummary {
	summary := model.BatchSummary{
		TotalFiles: len(files),
		BySeverity: make(map[model.Severity]int),
		ByCategory: make(map[model.Category]int),
	}

	var totals model.QualityScores
	for _, f := range files {
		switch {
		case f.Unsupported:
			summary.UnsupportedFiles++
			continue
		case f.Report == nil:
			summary.FailedFiles++
			continue
		}

		summary.AnalyzedFiles++
		for _, issue := range f.Report.SyntaxIssues {
			summary.TotalIssues++
			summary.BySeverity[issue.Severity]++
			summary.ByCategory[issue.Category]++
		}

		q := f.Report.CodeQuality
		totals.Maintainability += q.Maintainability
		totals.Readability += q.Readability
		totals.Testability += q.Testability
		totals.Performance += q.Performance
		totals.Security += q.Security
	}

	if n := float64(summary.AnalyzedFiles); n > 0 {
		summary.AverageScores = model.AverageScores{
			Maintainability: float64(totals.Maintainability) / n,
			Readability:     float64(totals.Readability) / n,
			Testability:     float64(totals.Testability) / n,
			Performance:     float64(totals.Performance) / n,
			Security:        float64(totals.Security) / n,
		}
	}

	return summary
}
