package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/util"
)

const pyCode = "def greet(name):\n    print(name)\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.py"), pyCode)
	writeFile(t, filepath.Join(dir, "a.py"), pyCode)
	writeFile(t, filepath.Join(dir, "README.md"), "# readme")
	writeFile(t, filepath.Join(dir, ".venv", "lib", "x.py"), pyCode)
	writeFile(t, filepath.Join(dir, "pkg", "c.py"), pyCode)

	matcher := util.NewExclusionMatcher(config.ExclusionsConfig{FilePatterns: []string{"**/.venv/**"}})
	readme := filepath.Join(dir, "README.md")

	files, err := CollectFiles([]string{dir, readme, filepath.Join(dir, "a.py")}, matcher)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "pkg", "c.py"),
	}, files)
}

func TestCollectFiles_Missing(t *testing.T) {
	_, err := CollectFiles([]string{filepath.Join(t.TempDir(), "nope")}, nil)
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	writeFile(t, good, pyCode)

	inputs := []Input{
		FileInput(good),
		InlineInput("prose", "hello there"),
		FileInput(filepath.Join(dir, "missing.py")),
		InlineInput("snippet", "x = 1\nprint(x)\n"),
	}

	var (
		mu       sync.Mutex
		observed []string
	)
	r := NewRunner(nil, config.ConcurrencyConfig{MaxParallelFiles: 2}, func(in Input, _ model.FileReport, _ time.Duration) {
		mu.Lock()
		observed = append(observed, in.Name)
		mu.Unlock()
	})

	results, err := r.Run(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, good, results[0].Path)
	require.NotNil(t, results[0].Report)
	assert.Equal(t, "python", results[0].Report.Language)

	assert.True(t, results[1].Unsupported)
	assert.Nil(t, results[1].Report)

	assert.NotEmpty(t, results[2].Error)
	assert.Nil(t, results[2].Report)

	require.NotNil(t, results[3].Report)
	assert.Equal(t, "1", results[3].Report.CodeOutput.Output)

	assert.ElementsMatch(t, []string{good, "prose", inputs[2].Name, "snippet"}, observed)
}

func TestRunner_FailFast(t *testing.T) {
	failing := Input{Name: "broken", Load: func() (string, error) { return "", errors.New("boom") }}

	r := NewRunner(nil, config.ConcurrencyConfig{MaxParallelFiles: 1, FailFast: true})
	_, err := r.Run(context.Background(), []Input{failing, InlineInput("ok", pyCode)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	// unsupported input is not a failure
	_, err = r.Run(context.Background(), []Input{InlineInput("prose", "just words")})
	assert.NoError(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, config.ConcurrencyConfig{MaxParallelFiles: 1}).Run(ctx, []Input{InlineInput("a", pyCode)})
	assert.ErrorIs(t, err, context.Canceled)
}
