package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pylens/src/controller"
	"pylens/src/model"
	"pylens/src/service/analyzer"
	"pylens/src/service/runner"
	"pylens/src/service/samples"
	"pylens/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		code       string
		fromStdin  bool
		sampleID   string
		outputDir  string
		format     string
		exportPath string
		noHistory  bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze Python files, directories or inline code",
		Long:  "Analyzes every input and prints a report. Directories contribute their .py files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inline := make(map[string]string)
			var inputs []runner.Input

			addInline := func(name, src string) {
				inline[name] = src
				inputs = append(inputs, runner.InlineInput(name, src))
			}

			if code != "" {
				addInline("<inline>", code)
			}
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				addInline("<stdin>", string(data))
			}
			if sampleID != "" {
				s, err := samples.Default().ByID(sampleID)
				if err != nil {
					return err
				}
				addInline("sample:"+s.ID, s.Code)
			}
			if len(inputs) == 0 && len(args) == 0 {
				return fmt.Errorf("nothing to analyze: pass paths, --code, --stdin or --sample")
			}

			store, err := h.openHistory(noHistory)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			util.Info("Analyzing %d path(s) and %d inline input(s) (timeout: %v)", len(args), len(inputs), timeout)

			analysisCtrl := controller.NewAnalysisController(h.cfg, controller.WithHistory(store))
			batch, err := analysisCtrl.Analyze(ctx, controller.AnalyzeRequest{
				Paths:  args,
				Inputs: inputs,
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			reportCtrl := controller.NewReportController(h.cfg)
			out := cmd.OutOrStdout()

			if outputDir != "" {
				h.cfg.Output.OutputDir = outputDir
				if format != "" {
					h.cfg.Output.Formats = []string{format}
				}
				paths, err := reportCtrl.GenerateReports(batch)
				if err != nil {
					return fmt.Errorf("generating reports: %w", err)
				}
				for _, path := range paths {
					fmt.Fprintf(out, "Report written to %s\n", path)
				}
			} else {
				outputFormat := format
				if outputFormat == "" {
					outputFormat = "json"
				}
				output, err := reportCtrl.GenerateToString(batch, outputFormat)
				if err != nil {
					return fmt.Errorf("generating report: %w", err)
				}
				fmt.Fprintln(out, output)
			}

			if exportPath != "" {
				if err := exportSingle(reportCtrl, exportPath, batch, inline, out); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(batch.Summary))

			if s := batch.Summary; s.TotalFiles > 0 && s.UnsupportedFiles == s.TotalFiles {
				return analyzer.ErrNotSupportedLanguage
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Python code to analyze")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read Python code from standard input")
	cmd.Flags().StringVar(&sampleID, "sample", "", "Analyze a built-in sample by id")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write report files to this directory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, sarif, text)")
	cmd.Flags().StringVar(&exportPath, "export", "", "Export code and analysis of a single input to this file or directory")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history store")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Analysis timeout")

	return cmd
}

func exportSingle(reportCtrl *controller.ReportController, path string, batch *model.BatchReport, inline map[string]string, out io.Writer) error {
	var analyzed []model.FileReport
	for _, f := range batch.Files {
		if f.Report != nil {
			analyzed = append(analyzed, f)
		}
	}
	if len(analyzed) != 1 {
		return fmt.Errorf("--export needs exactly one analyzed input, got %d", len(analyzed))
	}

	f := analyzed[0]
	src, ok := inline[f.Path]
	if !ok {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("reading %s for export: %w", f.Path, err)
		}
		src = string(data)
	}

	written, err := reportCtrl.Export(path, src, f.Report)
	if err != nil {
		return fmt.Errorf("exporting analysis: %w", err)
	}
	fmt.Fprintf(out, "Analysis exported to %s\n", written)
	return nil
}
