package controller

import (
	"context"
	"fmt"
	"io"

	"pylens/src/service/watch"
	"pylens/src/util"
)

// WatchController re-analyzes changed files and prints a text report
type WatchController struct {
	opts     WatchOptions
	analysis *AnalysisController
	reports  *ReportController
}

// WatchOptions controls where watch output goes
type WatchOptions struct {
	Out    io.Writer
	Format string
}

// NewWatchController creates a watch controller
func NewWatchController(analysis *AnalysisController, reports *ReportController, opts WatchOptions) *WatchController {
	if opts.Format == "" {
		opts.Format = "text"
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &WatchController{opts: opts, analysis: analysis, reports: reports}
}

// Run analyzes paths once, then again on every debounced change set
func (c *WatchController) Run(ctx context.Context, paths []string) error {
	c.Handle(ctx, paths)

	w, err := watch.New(c.analysis.cfg.Watch, util.NewExclusionMatcher(c.analysis.cfg.Exclusions), func(changed []string) {
		c.Handle(ctx, changed)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx, paths)
}

// Handle analyzes one change set. Errors are logged, never returned, so the
// watch loop keeps running.
func (c *WatchController) Handle(ctx context.Context, paths []string) {
	batch, err := c.analysis.Analyze(ctx, AnalyzeRequest{Paths: paths})
	if err != nil {
		util.Warn("Watch analysis failed: %v", err)
		return
	}

	out, err := c.reports.GenerateToString(batch, c.opts.Format)
	if err != nil {
		util.Warn("Watch report failed: %v", err)
		return
	}
	fmt.Fprintln(c.opts.Out, out)
}
