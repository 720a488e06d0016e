package util

import (
	"path/filepath"

	"github.com/gobwas/glob"

	"pylens/src/config"
)

// ExclusionMatcher matches file paths against exclusion patterns
type ExclusionMatcher struct {
	files        map[string]bool
	filePatterns []glob.Glob
}

// NewExclusionMatcher creates a new exclusion matcher from config.
// Patterns that fail to compile are skipped with a warning.
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	m := &ExclusionMatcher{
		files: make(map[string]bool, len(cfg.Files)),
	}

	for _, f := range cfg.Files {
		m.files[filepath.ToSlash(filepath.Clean(f))] = true
	}

	for _, p := range cfg.FilePatterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			Warn("Ignoring invalid exclusion pattern %q: %v", p, err)
			continue
		}
		m.filePatterns = append(m.filePatterns, g)
	}

	return m
}

// Matches checks if a file path should be excluded
func (m *ExclusionMatcher) Matches(filePath string) bool {
	normalized := filepath.ToSlash(filepath.Clean(filePath))
	if m.files[normalized] {
		return true
	}

	for _, g := range m.filePatterns {
		if g.Match(normalized) {
			return true
		}
		// "**/x/**" should also match relative paths that start with x/
		if g.Match("/" + normalized) {
			return true
		}
	}

	return false
}

// MatchGlob matches a path against a single glob pattern
func MatchGlob(pattern, path string) bool {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return false
	}
	return g.Match(filepath.ToSlash(path))
}
