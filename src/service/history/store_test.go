package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_Validation(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)

	_, err = Open(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Save(Record{Source: "a.py"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, path, store.Path())
}

func TestStore_SaveAndRecent(t *testing.T) {
	store := openTemp(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, src := range []string{"a.py", "b.py", "a.py"} {
		_, err := store.Save(Record{
			Source:       src,
			AnalyzedAt:   base.Add(time.Duration(i) * time.Minute),
			IssueCount:   i + 1,
			ErrorCount:   i,
			Cyclomatic:   2,
			Scores:       model.QualityScores{Maintainability: 90 - i, Security: 100},
			CanExecute:   i == 0,
			WarningCount: 1,
		})
		require.NoError(t, err)
	}

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].IssueCount)
	assert.Equal(t, 88, records[0].Scores.Maintainability)
	assert.True(t, records[2].CanExecute)
	assert.False(t, records[0].CanExecute)
	assert.True(t, base.Equal(records[2].AnalyzedAt))
	assert.NotEqual(t, uuid.Nil, records[0].ID)

	limited, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	onlyA, err := store.ForSource("a.py", 0)
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	for _, r := range onlyA {
		assert.Equal(t, "a.py", r.Source)
	}

	_, err = store.ForSource(" ", 5)
	assert.Error(t, err)
}

func TestStore_SaveDefaults(t *testing.T) {
	store := openTemp(t)

	rec, err := store.Save(Record{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.AnalyzedAt.IsZero())
	assert.Equal(t, "<inline>", rec.Source)
}

func TestNewRecord(t *testing.T) {
	report := &model.AnalysisReport{
		SyntaxIssues: []model.Issue{
			{Severity: model.SeverityError},
			{Severity: model.SeverityWarning},
			{Severity: model.SeverityWarning},
			{Severity: model.SeverityInfo},
		},
		LogicalAnalysis: model.LogicalAnalysis{Complexity: model.ComplexityMetrics{CyclomaticComplexity: 4}},
		CodeQuality:     model.QualityScores{Performance: 70},
		CodeOutput:      model.ExecutionPrediction{CanExecute: false},
	}

	rec := NewRecord("x.py", report, time.Unix(0, 0))
	assert.Equal(t, 4, rec.IssueCount)
	assert.Equal(t, 1, rec.ErrorCount)
	assert.Equal(t, 2, rec.WarningCount)
	assert.Equal(t, 1, rec.InfoCount)
	assert.Equal(t, 4, rec.Cyclomatic)
	assert.Equal(t, 70, rec.Scores.Performance)
	assert.Equal(t, time.UTC, rec.AnalyzedAt.Location())
}
