package model

// ComplexityMetrics contains the complexity figures for one source string
type ComplexityMetrics struct {
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
	CognitiveComplexity  int `json:"cognitive_complexity"`
	LinesOfCode          int `json:"lines_of_code"`
	MaxNestingDepth      int `json:"max_nesting_depth"`
}

// QualityScores contains five independent quality dimensions, each in [0, 100]
type QualityScores struct {
	Maintainability int `json:"maintainability"`
	Readability     int `json:"readability"`
	Testability     int `json:"testability"`
	Performance     int `json:"performance"`
	Security        int `json:"security"`
}

// AverageScores contains quality dimensions averaged over several reports
type AverageScores struct {
	Maintainability float64 `json:"maintainability"`
	Readability     float64 `json:"readability"`
	Testability     float64 `json:"testability"`
	Performance     float64 `json:"performance"`
	Security        float64 `json:"security"`
}
