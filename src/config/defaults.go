package config

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "pylens",
			Version:     "1.0.0",
			Description: "Heuristic Python code analyzer",
		},
		Concurrency: ConcurrencyConfig{
			MaxParallelFiles: 4,
			FailFast:         false,
		},
		Exclusions: ExclusionsConfig{
			FilePatterns: []string{
				"**/.venv/**", "**/venv/**", "**/__pycache__/**",
				"**/site-packages/**", "**/node_modules/**",
			},
		},
		Output: OutputConfig{
			Formats:            []string{"json"},
			OutputDir:          ".",
			IncludeSuggestions: true,
			IncludeExplanation: true,
			MaxIssuesPerFile:   0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    defaultHistoryPath(),
		},
		Watch: WatchConfig{
			Debounce:    300 * time.Millisecond,
			ExcludeDirs: []string{".git", ".venv", "venv", "__pycache__"},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9464",
		},
	}
}

func defaultHistoryPath() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".pylens", "history.db")
	}
	return "pylens-history.db"
}
