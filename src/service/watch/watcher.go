// Package watch re-runs analysis when Python files change on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"pylens/src/config"
	"pylens/src/util"
)

// Watcher batches file system events into debounced change sets
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	debounce    time.Duration
	excludeDirs []glob.Glob
	exclusions  *util.ExclusionMatcher
	onChange    func([]string)
	callbackMu  sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
}

// New creates a watcher. onChange receives sorted, deduplicated .py paths.
func New(cfg config.WatchConfig, exclusions *util.ExclusionMatcher, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, util.WrapError(err, util.CodeInternal, "failed to create file watcher")
	}

	w := &Watcher{
		fsWatcher:  fsw,
		debounce:   cfg.Debounce,
		exclusions: exclusions,
		onChange:   onChange,
		pending:    make(map[string]struct{}),
	}

	for _, pattern := range cfg.ExcludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			_ = fsw.Close()
			return nil, util.AddContext(util.WrapError(err, util.CodeValidationError, "invalid watch exclude pattern"), "pattern", pattern)
		}
		w.excludeDirs = append(w.excludeDirs, g)
	}

	return w, nil
}

// Run watches paths until ctx is cancelled
func (w *Watcher) Run(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := w.watchRecursive(path); err != nil {
			return util.AddContext(util.WrapError(err, util.CodeNotFound, "failed to watch path"), util.CtxPath, path)
		}
	}
	util.Info("Watching %d path(s) for Python changes", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			util.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.shouldExcludeDir(event.Name) {
				return
			}
			if err := w.watchRecursive(event.Name); err != nil {
				util.Warn("Failed to watch new directory %s: %v", event.Name, err)
				return
			}
			w.enqueueExistingFiles(event.Name)
			return
		}
	}

	if !w.isCandidate(event.Name) {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		w.scheduleChange(event.Name)
	}
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldExcludeDir(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	util.Debug("Flushing %d changed file(s)", len(paths))
	w.onChange(paths)
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range w.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) isCandidate(path string) bool {
	if !strings.HasSuffix(path, ".py") {
		return false
	}
	return w.exclusions == nil || !w.exclusions.Matches(path)
}

func (w *Watcher) enqueueExistingFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if w.isCandidate(path) {
			w.scheduleChange(path)
		}
		return nil
	})
}

// Close stops pending timers and the underlying watcher
func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
