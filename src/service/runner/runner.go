// Package runner analyzes many inputs concurrently.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/service/analyzer"
	"pylens/src/util"
)

// Observer is called once per finished input. It may be called concurrently.
type Observer func(in Input, result model.FileReport, elapsed time.Duration)

// Runner analyzes inputs with a bounded number of workers
type Runner struct {
	analyzer  *analyzer.Analyzer
	cfg       config.ConcurrencyConfig
	observers []Observer
}

// NewRunner creates a runner around an analyzer
func NewRunner(a *analyzer.Analyzer, cfg config.ConcurrencyConfig, observers ...Observer) *Runner {
	if a == nil {
		a = analyzer.New()
	}
	return &Runner{analyzer: a, cfg: cfg, observers: observers}
}

// Run analyzes every input and returns one FileReport per input, in input
// order. Rejected inputs are marked Unsupported. Inputs that cannot be read
// carry an Error, or abort the run when FailFast is set.
func (r *Runner) Run(ctx context.Context, inputs []Input) ([]model.FileReport, error) {
	startTime := time.Now()
	util.Info("Analyzing %d input(s)", len(inputs))

	results := make([]model.FileReport, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	if r.cfg.MaxParallelFiles > 0 {
		group.SetLimit(r.cfg.MaxParallelFiles)
	}

	for i, in := range inputs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			inputStart := time.Now()
			result := r.analyze(in)
			elapsed := time.Since(inputStart)
			results[i] = result

			for _, observe := range r.observers {
				observe(in, result, elapsed)
			}

			if result.Error != "" && r.cfg.FailFast {
				return fmt.Errorf("input %s: %s", in.Name, result.Error)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		util.Error("Analysis aborted: %v", err)
		return nil, err
	}

	util.Info("Analysis complete: %d input(s) (took %v)", len(inputs), time.Since(startTime))
	return results, nil
}

func (r *Runner) analyze(in Input) model.FileReport {
	result := model.FileReport{Path: in.Name}

	code, err := in.Load()
	if err != nil {
		util.Error("Failed to read %s: %v", in.Name, err)
		result.Error = err.Error()
		return result
	}

	report, err := r.analyzer.Analyze(code)
	switch {
	case errors.Is(err, analyzer.ErrNotSupportedLanguage):
		util.Debug("Skipping %s: not Python", in.Name)
		result.Unsupported = true
	case err != nil:
		result.Error = err.Error()
	default:
		result.Report = report
	}
	return result
}
