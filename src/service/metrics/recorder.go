// Package metrics exposes analysis counters in Prometheus form.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pylens/src/model"
)

// Outcome labels for analyses
const (
	OutcomeAnalyzed    = "analyzed"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
)

// Recorder records analysis metrics into a registry. A nil Recorder is a no-op.
type Recorder struct {
	analyses   *prometheus.CounterVec
	duration   prometheus.Histogram
	issues     *prometheus.CounterVec
	lastScores *prometheus.GaugeVec
	complexity prometheus.Histogram
}

// NewRecorder registers the analysis collectors with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pylens_analyses_total",
			Help: "Total number of analyzed inputs by outcome.",
		}, []string{"outcome"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pylens_analysis_seconds",
			Help:    "Time spent analyzing a single input.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),

		issues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pylens_issues_total",
			Help: "Total number of reported issues by severity.",
		}, []string{"severity"}),

		lastScores: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pylens_last_quality_score",
			Help: "Quality scores of the most recent successful analysis.",
		}, []string{"dimension"}),

		complexity: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pylens_cyclomatic_complexity",
			Help:    "Cyclomatic complexity of analyzed inputs.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
	}
}

// Observe records one analysis. report may be nil for unsupported or failed inputs.
func (r *Recorder) Observe(outcome string, elapsed time.Duration, report *model.AnalysisReport) {
	if r == nil {
		return
	}

	r.analyses.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())

	if report == nil {
		return
	}

	for _, issue := range report.SyntaxIssues {
		r.issues.WithLabelValues(string(issue.Severity)).Inc()
	}
	r.complexity.Observe(float64(report.LogicalAnalysis.Complexity.CyclomaticComplexity))

	q := report.CodeQuality
	r.lastScores.WithLabelValues("maintainability").Set(float64(q.Maintainability))
	r.lastScores.WithLabelValues("readability").Set(float64(q.Readability))
	r.lastScores.WithLabelValues("testability").Set(float64(q.Testability))
	r.lastScores.WithLabelValues("performance").Set(float64(q.Performance))
	r.lastScores.WithLabelValues("security").Set(float64(q.Security))
}
