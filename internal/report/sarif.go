package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/sonar-report/internal/sonar"
)

const (
	sarifToolName = "SonarCloud"
	sarifToolURI  = "https://sonarcloud.io"
)

// SARIFRenderer renders the report issues as a SARIF 2.1.0 log.
type SARIFRenderer struct{}

func (sr *SARIFRenderer) Render(w io.Writer, r *Report) error {
	log, err := sr.Log(r)
	if err != nil {
		return err
	}
	if err := log.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write sarif report: %w", err)
	}
	return nil
}

// Log converts the report issues into a SARIF log with a single run.
func (sr *SARIFRenderer) Log(r *Report) (*sarif.Report, error) {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	seenRules := make(map[string]bool)
	for _, issue := range r.Issues {
		// AddRule returns the existing rule for a repeated ID; the first issue defines it
		rule := run.AddRule(SARIFRuleID(issue))
		if !seenRules[rule.ID] {
			seenRules[rule.ID] = true
			rule.WithDescription(sonar.TypeDisplayName(issue.Type)).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: SARIFLevel(issue.Severity),
				})
		}

		physical := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(sonar.TrimComponent(issue.Component)))
		if issue.Line != nil {
			physical.WithRegion(sarif.NewRegion().WithStartLine(*issue.Line))
		}
		location := sarif.NewLocation().WithPhysicalLocation(physical)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(issue.Message)).
			WithLevel(SARIFLevel(issue.Severity)).
			WithLocations([]*sarif.Location{location})

		props := sarif.Properties{
			"key":      issue.Key,
			"type":     issue.Type,
			"severity": issue.Severity,
			"effort":   issue.Effort,
		}
		if minutes, ok := sonar.ParseEffort(issue.Effort); ok {
			props["effortMinutes"] = minutes
		}
		if issue.Status != "" {
			props["status"] = issue.Status
		}
		if len(issue.Tags) > 0 {
			props["tags"] = issue.Tags
		}
		result.Properties = props
		run.AddResult(result)
	}

	log.AddRun(run)
	return log, nil
}

// SARIFRuleID returns the rule an issue is reported under.
func SARIFRuleID(issue sonar.Issue) string {
	if issue.Rule != "" {
		return issue.Rule
	}
	return "sonar:" + issue.Type
}

// SARIFLevel maps a Sonar severity onto a SARIF result level.
func SARIFLevel(severity string) string {
	switch severity {
	case sonar.SeverityBlocker, sonar.SeverityCritical:
		return "error"
	case sonar.SeverityMajor:
		return "warning"
	case sonar.SeverityMinor, sonar.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
