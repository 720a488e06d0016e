package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pylens/src/model"
	"pylens/src/util"
)

// ExportFileName is the default name of an export file taken at t
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("python-analysis-%d.json", t.UnixMilli())
}

// Export serializes the analyzed code and its report in one envelope
func Export(code string, analysis *model.AnalysisReport, at time.Time) ([]byte, error) {
	doc := model.ExportDocument{
		Code:      code,
		Analysis:  analysis,
		Timestamp: at.UTC(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, util.WrapError(err, util.CodeInternal, "failed to encode export")
	}
	return data, nil
}

// WriteExport writes the envelope to path. A directory path gets the
// default file name. It returns the path written.
func WriteExport(path, code string, analysis *model.AnalysisReport, at time.Time) (string, error) {
	data, err := Export(code, analysis, at)
	if err != nil {
		return "", err
	}

	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, ExportFileName(at))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", util.AddContext(util.WrapError(err, util.CodeInternal, "failed to create export directory"), util.CtxPath, dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", util.AddContext(util.WrapError(err, util.CodeInternal, "failed to write export"), util.CtxPath, path)
	}

	util.Info("Exported analysis to %s", path)
	return path, nil
}

// ReadExport loads an export file
func ReadExport(path string) (*model.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.AddContext(util.WrapError(err, util.CodeNotFound, "failed to read export"), util.CtxPath, path)
	}
	var doc model.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, util.AddContext(util.WrapError(err, util.CodeValidationError, "invalid export file"), util.CtxPath, path)
	}
	return &doc, nil
}
