package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/sonar-report/internal/git"
	"github.com/scan-io-git/sonar-report/internal/report"
	"github.com/scan-io-git/sonar-report/internal/sonar"
	"github.com/scan-io-git/sonar-report/pkg/shared/config"
	"github.com/scan-io-git/sonar-report/pkg/shared/errors"
	"github.com/scan-io-git/sonar-report/pkg/shared/files"
	"github.com/scan-io-git/sonar-report/pkg/shared/logger"
)

const defaultInputFile = "paste3.json"

type ReportOptions struct {
	Input          string
	OutputPath     string
	Format         string
	SourceFolder   string
	StrictCounters bool
}

var allReportOptions ReportOptions

var execExampleReport = `  # Generate the default DOCX report from ./paste3.json
  sonar-report report

  # Generate a PDF report into a folder, with repository details from a local checkout
  sonar-report report -i exports/issues.json -o reports/ -f pdf -s ~/src/shop

  # Fail when the declared issue total does not match the issue list
  sonar-report report -i issues.json --strict`

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:     "report [-i /path/to/issues.json] [-o /path/to/output] [-f docx|pdf|sarif] [-s /path/to/source]",
	Short:   "Generate a report from a SonarCloud issues export",
	Example: execExampleReport,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logger.NewLogger(AppConfig, "report")

		opts, format, err := resolveReportOptions(allReportOptions, AppConfig)
		if err != nil {
			return errors.NewCommandError(err, errors.ExitCodeInvalidInput)
		}

		outputPath, err := generateReport(opts, format, logger, time.Now().UTC())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Document created: %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&allReportOptions.Input, "input", "i", "", fmt.Sprintf("input file with the SonarCloud issues export (default %q)", defaultInputFile))
	reportCmd.Flags().StringVarP(&allReportOptions.OutputPath, "output", "o", "", "output file or folder (default \"SonarCloud_Detailed_Report.<format>\")")
	reportCmd.Flags().VarP(&formatValue{&allReportOptions.Format}, "format", "f", fmt.Sprintf("report format, one of %s (default %q)", report.FormatNames(), report.FormatDOCX))
	reportCmd.Flags().StringVarP(&allReportOptions.SourceFolder, "source", "s", "", "source folder of the analysed repository, adds repository details to the report")
	reportCmd.Flags().BoolVar(&allReportOptions.StrictCounters, "strict", false, "fail when the declared issue total does not match the issue list")
}

// formatValue is a flag value that only accepts known report formats.
type formatValue struct {
	format *string
}

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string {
	if v.format == nil {
		return ""
	}
	return *v.format
}

func (v *formatValue) Set(s string) error {
	f, err := report.ParseFormat(s)
	if err != nil {
		return err
	}
	*v.format = string(f)
	return nil
}

func (v *formatValue) Type() string {
	return "format"
}

// resolveReportOptions merges flags over the config file over built-in defaults.
func resolveReportOptions(flags ReportOptions, cfg *config.Config) (ReportOptions, report.Format, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	opts := ReportOptions{
		Input:          config.SetThen(flags.Input, config.SetThen(cfg.Report.Input, defaultInputFile)),
		OutputPath:     config.SetThen(flags.OutputPath, cfg.Report.Output),
		Format:         config.SetThen(flags.Format, config.SetThen(cfg.Report.Format, string(report.FormatDOCX))),
		SourceFolder:   config.SetThen(flags.SourceFolder, cfg.Report.Source),
		StrictCounters: flags.StrictCounters || cfg.Report.StrictCounters,
	}

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return opts, "", err
	}
	opts.Format = string(format)
	return opts, format, nil
}

// generateReport runs the load, categorize, assemble, render and save stages
// and returns the path of the written report.
func generateReport(opts ReportOptions, format report.Format, logger hclog.Logger, now time.Time) (string, error) {
	logger.Debug("reading issues export", "path", opts.Input)
	export, err := sonar.ReadExport(opts.Input)
	if err != nil {
		return "", errors.NewCommandError(err, errors.ExitCodeInvalidInput)
	}

	if len(export.Issues) == 0 {
		logger.Warn("no issues found in JSON file", "path", opts.Input)
	}

	for _, m := range export.CounterMismatches() {
		if opts.StrictCounters {
			return "", errors.NewCommandError(fmt.Errorf("inconsistent issues export: %s", m), errors.ExitCodeInvalidInput)
		}
		logger.Warn("inconsistent issues export", "counter", m.Counter, "declared", m.Declared, "actual", m.Actual)
	}

	groups := sonar.Categorize(export.Issues)
	logger.Debug("issues categorized",
		"types", len(groups.ByType),
		"severities", len(groups.BySeverity),
		"components", len(groups.Components()),
	)

	reportOpts := report.Options{Created: now}
	if opts.SourceFolder != "" {
		sourceFolder, err := files.ExpandPath(opts.SourceFolder)
		if err != nil {
			return "", errors.NewCommandError(fmt.Errorf("failed to expand source path %q: %w", opts.SourceFolder, err), errors.ExitCodeInvalidInput)
		}
		md, err := git.CollectRepositoryMetadata(sourceFolder)
		if err != nil {
			logger.Debug("can't collect repository metadata", "err", err)
		}
		reportOpts.Repository = md
	}

	r := report.Build(export, groups, reportOpts)

	renderer, err := report.NewRenderer(format)
	if err != nil {
		return "", errors.NewCommandError(err, errors.ExitCodeInvalidInput)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", format, err)
	}

	outputPath, _, err := files.DetermineFileFullPath(opts.OutputPath, format.DefaultFileName())
	if err != nil {
		return "", err
	}
	if err := files.WriteFileAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	logger.Debug("report saved", "path", outputPath, "format", format, "issues", len(export.Issues))
	return outputPath, nil
}
