package report

import (
	"fmt"
	"time"

	"github.com/scan-io-git/sonar-report/internal/git"
	"github.com/scan-io-git/sonar-report/internal/sonar"
)

const (
	Title                   = "SonarCloud Code Quality Report"
	ExecutiveSummaryHeading = "Executive Summary"
	AllIssuesHeading        = "All Issues"

	// header cells of the issue table are rendered at this size, in points
	HeaderFontSize = 10
)

var (
	SummaryHeaders = []string{"Metric", "Value"}
	IssueHeaders   = []string{"Issue Key", "Type", "Severity", "File", "Line", "Message", "Effort"}
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

var severityColors = map[string]Color{
	sonar.SeverityBlocker:  {192, 0, 0},
	sonar.SeverityCritical: {255, 0, 0},
	sonar.SeverityMajor:    {255, 127, 0},
	sonar.SeverityMinor:    {255, 201, 14},
	sonar.SeverityInfo:     {0, 0, 255},
}

// SeverityColor returns the display color of a severity; unknown severities are black.
func SeverityColor(severity string) Color {
	if c, ok := severityColors[severity]; ok {
		return c
	}
	return Color{}
}

// Metric is a label/value pair shown in a two column table or list.
type Metric struct {
	Name  string
	Value string
}

// IssueRow is one line of the full issue table.
type IssueRow struct {
	Key      string
	Type     string
	Severity string
	File     string
	Line     string
	Message  string
	Effort   string
	Color    Color
}

// Cells returns the row values in IssueHeaders order.
func (r IssueRow) Cells() []string {
	return []string{r.Key, r.Type, r.Severity, r.File, r.Line, r.Message, r.Effort}
}

// SeverityColumn is the index of the severity cell in IssueRow.Cells.
const SeverityColumn = 2

// Options carries data that does not come from the export itself.
type Options struct {
	Repository *git.RepositoryMetadata
	Created    time.Time
}

// Report is the renderer independent content of a quality report.
type Report struct {
	Title       string
	ProjectName string
	GeneratedOn string
	Repository  []Metric
	Summary     []Metric
	Rows        []IssueRow
	Created     time.Time

	// Issues is the untouched issue list, for renderers that need more than the table columns
	Issues []sonar.Issue
}

// ProjectLine is the project caption of the title page.
func (r *Report) ProjectLine() string {
	return "Project: " + r.ProjectName
}

// GeneratedLine is the date caption of the title page.
func (r *Report) GeneratedLine() string {
	return "Generated on: " + r.GeneratedOn
}

// Build assembles the report content from an export and its groupings.
func Build(export *sonar.Export, groups *sonar.Groups, opts Options) *Report {
	r := &Report{
		Title:       Title,
		ProjectName: export.ProjectName(),
		GeneratedOn: export.GeneratedOn(),
		Repository:  repositoryMetrics(opts.Repository),
		Summary:     summaryMetrics(export, groups),
		Rows:        make([]IssueRow, 0, len(export.Issues)),
		Created:     opts.Created,
		Issues:      export.Issues,
	}

	for _, issue := range export.Issues {
		r.Rows = append(r.Rows, IssueRow{
			Key:      issue.Key,
			Type:     issue.Type,
			Severity: issue.Severity,
			File:     sonar.FileName(sonar.TrimComponent(issue.Component)),
			Line:     issue.LineText(),
			Message:  issue.Message,
			Effort:   issue.Effort,
			Color:    SeverityColor(issue.Severity),
		})
	}

	return r
}

func summaryMetrics(export *sonar.Export, groups *sonar.Groups) []Metric {
	metrics := []Metric{
		{"Total Issues", fmt.Sprintf("%d", export.Total)},
		{"Effort Required", fmt.Sprintf("%d mins", export.EffortTotal)},
		{"Technical Debt", fmt.Sprintf("%d mins", export.DebtTotal)},
	}

	for _, severity := range sonar.SeverityOrder {
		if issues, ok := groups.BySeverity[severity]; ok {
			metrics = append(metrics, Metric{severity + " Issues", fmt.Sprintf("%d", len(issues))})
		}
	}

	for _, issueType := range sonar.TypeOrder {
		if issues, ok := groups.ByType[issueType]; ok {
			metrics = append(metrics, Metric{sonar.TypeDisplayName(issueType), fmt.Sprintf("%d", len(issues))})
		}
	}

	return metrics
}

func repositoryMetrics(md *git.RepositoryMetadata) []Metric {
	if md == nil {
		return nil
	}

	var metrics []Metric
	if md.RepositoryFullName != nil {
		metrics = append(metrics, Metric{"Repository", *md.RepositoryFullName})
	}
	if md.BranchName != nil {
		metrics = append(metrics, Metric{"Branch", *md.BranchName})
	}
	if md.CommitHash != nil {
		metrics = append(metrics, Metric{"Commit", *md.CommitHash})
	}
	if md.Subfolder != "" {
		metrics = append(metrics, Metric{"Subfolder", md.Subfolder})
	}
	return metrics
}
