package model

import "time"

// BranchKind is the kind of conditional branch
type BranchKind string

const (
	BranchIf      BranchKind = "if"
	BranchSwitch  BranchKind = "switch"
	BranchTernary BranchKind = "ternary"
)

// LoopKind is the kind of loop
type LoopKind string

const (
	LoopFor     LoopKind = "for"
	LoopWhile   LoopKind = "while"
	LoopDoWhile LoopKind = "do-while"
)

// Branch describes a conditional branch found in the source
type Branch struct {
	Line        int        `json:"line"`
	Kind        BranchKind `json:"kind"`
	Condition   string     `json:"condition"`
	AlwaysTrue  bool       `json:"always_true"`
	AlwaysFalse bool       `json:"always_false"`
	EdgeCases   []string   `json:"edge_cases"`
}

// Loop describes a loop header found in the source
type Loop struct {
	Line            int      `json:"line"`
	Kind            LoopKind `json:"kind"`
	Condition       string   `json:"condition"`
	PotentialIssues []string `json:"potential_issues"`
}

// CodeLocation is a single flagged line, not a range
type CodeLocation struct {
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Description string `json:"description"`
}

// VariableRecord approximates the lifetime of a variable
type VariableRecord struct {
	Name     string `json:"name"`
	Declared int    `json:"declared"`
	LastUsed int    `json:"last_used"`
	Scope    string `json:"scope"`
}

// ControlFlow holds the control-flow facts of a source string
type ControlFlow struct {
	Branches               []Branch       `json:"branches"`
	Loops                  []Loop         `json:"loops"`
	UnreachableCode        []CodeLocation `json:"unreachable_code"`
	PotentialInfiniteLoops []CodeLocation `json:"potential_infinite_loops"`
}

// DataFlow holds the approximate data-flow facts of a source string
type DataFlow struct {
	UnusedVariables  []string         `json:"unused_variables"`
	VariableLifetime []VariableRecord `json:"variable_lifetime"`
	ResourceLeaks    []CodeLocation   `json:"resource_leaks"`
}

// LogicalAnalysis groups control flow, data flow and complexity
type LogicalAnalysis struct {
	ControlFlow ControlFlow       `json:"control_flow"`
	DataFlow    DataFlow          `json:"data_flow"`
	Complexity  ComplexityMetrics `json:"complexity"`
}

// ExecutionPrediction is the heuristic prediction of program output
type ExecutionPrediction struct {
	CanExecute    bool     `json:"can_execute"`
	HasOutput     bool     `json:"has_output"`
	Output        string   `json:"output"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	ExecutionTime float64  `json:"execution_time_ms"` // diagnostic only
}

// AnalysisReport is the complete result of analyzing one source string
type AnalysisReport struct {
	Language        string              `json:"language"`
	SyntaxIssues    []Issue             `json:"syntax_issues"`
	LogicalAnalysis LogicalAnalysis     `json:"logical_analysis"`
	CodeQuality     QualityScores       `json:"code_quality"`
	Suggestions     []Suggestion        `json:"suggestions"`
	Explanation     string              `json:"explanation"`
	CodeOutput      ExecutionPrediction `json:"code_output"`
}

// FileReport is the analysis result for a single input file
type FileReport struct {
	Path   string          `json:"path"`
	Report *AnalysisReport `json:"report,omitempty"`
	Error  string          `json:"error,omitempty"`

	// Unsupported is set when the input was rejected by the language gate
	Unsupported bool `json:"unsupported,omitempty"`
}

// BatchReport represents the complete output of analyzing several inputs
type BatchReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Summary     BatchSummary `json:"summary"`
	Files       []FileReport `json:"files"`
}

// BatchSummary contains aggregated statistics over a batch
type BatchSummary struct {
	TotalFiles       int              `json:"total_files"`
	AnalyzedFiles    int              `json:"analyzed_files"`
	UnsupportedFiles int              `json:"unsupported_files"`
	FailedFiles      int              `json:"failed_files"`
	TotalIssues      int              `json:"total_issues"`
	BySeverity       map[Severity]int `json:"by_severity"`
	ByCategory       map[Category]int `json:"by_category"`
	AverageScores    AverageScores    `json:"average_scores"`
}

// ExportDocument is the envelope written by the export command
type ExportDocument struct {
	Code      string          `json:"code"`
	Analysis  *AnalysisReport `json:"analysis"`
	Timestamp time.Time       `json:"timestamp"`
}
