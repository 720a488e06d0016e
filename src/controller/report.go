package controller

import (
	"os"
	"path/filepath"
	"time"

	"pylens/src/config"
	"pylens/src/model"
	"pylens/src/service/report"
	"pylens/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

func (c *ReportController) generator() *report.Generator {
	return report.NewGenerator(c.cfg.Output, c.cfg.Agent.Version)
}

// GenerateReports generates reports in all configured formats
func (c *ReportController) GenerateReports(batch *model.BatchReport) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	reportGenerator := c.generator()
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		output, err := reportGenerator.Generate(batch, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.getOutputPath(format)
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, util.AddContext(util.WrapError(err, util.CodeInternal, "failed to create output directory"), util.CtxPath, outputPath)
		}
		if err := os.WriteFile(outputPath, []byte(output), 0o644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, util.AddContext(util.WrapError(err, util.CodeInternal, "failed to write report"), util.CtxPath, outputPath)
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString generates a report to a string
func (c *ReportController) GenerateToString(batch *model.BatchReport, format string) (string, error) {
	return c.generator().Generate(batch, format)
}

// Export writes the code and its analysis as an export envelope
func (c *ReportController) Export(path, code string, analysis *model.AnalysisReport) (string, error) {
	if path == "" {
		path = c.cfg.Output.OutputDir
	}
	return report.WriteExport(path, code, analysis, time.Now())
}

func (c *ReportController) getOutputPath(format string) string {
	return filepath.Join(c.cfg.Output.OutputDir, "pylens-report."+report.Extension(format))
}
