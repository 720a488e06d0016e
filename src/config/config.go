package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure
type Config struct {
	Agent       AgentConfig       `yaml:"agent" toml:"agent"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" toml:"concurrency"`
	Exclusions  ExclusionsConfig  `yaml:"exclusions" toml:"exclusions"`
	Output      OutputConfig      `yaml:"output" toml:"output"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
	History     HistoryConfig     `yaml:"history" toml:"history"`
	Watch       WatchConfig       `yaml:"watch" toml:"watch"`
	Metrics     MetricsConfig     `yaml:"metrics" toml:"metrics"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Version     string `yaml:"version" toml:"version"`
	Description string `yaml:"description" toml:"description"`
}

// ConcurrencyConfig contains settings for batch analysis
type ConcurrencyConfig struct {
	MaxParallelFiles int  `yaml:"max_parallel_files" toml:"max_parallel_files"`
	FailFast         bool `yaml:"fail_fast" toml:"fail_fast"`
}

// ExclusionsConfig contains exclusion patterns
type ExclusionsConfig struct {
	FilePatterns []string `yaml:"file_patterns" toml:"file_patterns"`
	Files        []string `yaml:"files" toml:"files"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats            []string `yaml:"formats" toml:"formats"`
	OutputDir          string   `yaml:"output_dir" toml:"output_dir"`
	IncludeSuggestions bool     `yaml:"include_suggestions" toml:"include_suggestions"`
	IncludeExplanation bool     `yaml:"include_explanation" toml:"include_explanation"`
	MaxIssuesPerFile   int      `yaml:"max_issues_per_file" toml:"max_issues_per_file"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level         string `yaml:"level" toml:"level"`
	Format        string `yaml:"format" toml:"format"` // text, json
	File          string `yaml:"file" toml:"file"`
	MaxSizeMB     int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays    int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress      bool   `yaml:"compress" toml:"compress"`
	IncludeCaller bool   `yaml:"include_caller" toml:"include_caller"`
}

// HistoryConfig contains settings for the analysis history store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// WatchConfig contains settings for watch mode
type WatchConfig struct {
	Debounce    time.Duration `yaml:"debounce" toml:"debounce"`
	ExcludeDirs []string      `yaml:"exclude_dirs" toml:"exclude_dirs"`
}

// MetricsConfig contains settings for the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Addr    string `yaml:"addr" toml:"addr"`
}

var validFormats = map[string]bool{
	"json": true, "markdown": true, "md": true, "sarif": true, "text": true,
}

// Validate checks the configuration for values the tool cannot work with
func (c *Config) Validate() error {
	if c.Concurrency.MaxParallelFiles < 1 {
		return fmt.Errorf("concurrency.max_parallel_files must be at least 1, got %d", c.Concurrency.MaxParallelFiles)
	}
	for _, f := range c.Output.Formats {
		if !validFormats[f] {
			return fmt.Errorf("output.formats: unsupported format %q", f)
		}
	}
	if c.Output.MaxIssuesPerFile < 0 {
		return fmt.Errorf("output.max_issues_per_file must not be negative")
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}
	return nil
}
