package sonar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scan-io-git/sonar-report/pkg/shared/files"
)

const (
	UnknownProject = "Unknown Project"
	NotAvailable   = "N/A"
)

// Issue is a single finding as exported by the SonarCloud issues API.
type Issue struct {
	Key         string   `json:"key"`
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Component   string   `json:"component"`
	Line        *int     `json:"line,omitempty"`
	Message     string   `json:"message"`
	Effort      string   `json:"effort"`
	Debt        string   `json:"debt,omitempty"`
	Rule        string   `json:"rule,omitempty"`
	Status      string   `json:"status,omitempty"`
	Project     string   `json:"project,omitempty"`
	ProjectName *string  `json:"projectName,omitempty"`
	UpdateDate  *string  `json:"updateDate,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Export is the top level document of an issues export.
// Counters are taken as given and never recomputed from Issues.
type Export struct {
	Total       int     `json:"total"`
	EffortTotal int     `json:"effortTotal"`
	DebtTotal   int     `json:"debtTotal"`
	Issues      []Issue `json:"issues"`
}

// Mismatch describes an aggregate counter that disagrees with the issue list.
type Mismatch struct {
	Counter  string
	Declared int
	Actual   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s is %d but the export lists %d issues", m.Counter, m.Declared, m.Actual)
}

// fields every issue must carry; the report cannot be assembled without them
var requiredIssueFields = []string{"key", "type", "severity", "component", "message", "effort"}

type rawExport struct {
	Total       *int              `json:"total"`
	EffortTotal *int              `json:"effortTotal"`
	DebtTotal   *int              `json:"debtTotal"`
	Issues      []json.RawMessage `json:"issues"`
}

// ReadExport loads and validates an issues export from inputPath.
func ReadExport(inputPath string) (*Export, error) {
	expandedPath, err := files.ExpandPath(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand input path %q: %w", inputPath, err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return nil, fmt.Errorf("invalid input file: %w", err)
	}

	jsonFile, err := os.Open(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", expandedPath, err)
	}
	defer jsonFile.Close()

	return DecodeExport(jsonFile)
}

// DecodeExport decodes an issues export from r.
func DecodeExport(r io.Reader) (*Export, error) {
	var raw rawExport
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode issues export: %w", err)
	}

	counters := []struct {
		name  string
		value *int
	}{
		{"total", raw.Total},
		{"effortTotal", raw.EffortTotal},
		{"debtTotal", raw.DebtTotal},
	}
	for _, c := range counters {
		if c.value == nil {
			return nil, fmt.Errorf("issues export is missing required field %q", c.name)
		}
	}

	export := &Export{
		Total:       *raw.Total,
		EffortTotal: *raw.EffortTotal,
		DebtTotal:   *raw.DebtTotal,
		Issues:      make([]Issue, 0, len(raw.Issues)),
	}

	for i, msg := range raw.Issues {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(msg, &fields); err != nil {
			return nil, fmt.Errorf("issue #%d: %w", i, err)
		}
		for _, name := range requiredIssueFields {
			if _, ok := fields[name]; !ok {
				return nil, fmt.Errorf("issue #%d: missing required field %q", i, name)
			}
		}

		var issue Issue
		if err := json.Unmarshal(msg, &issue); err != nil {
			return nil, fmt.Errorf("issue #%d: %w", i, err)
		}
		export.Issues = append(export.Issues, issue)
	}

	return export, nil
}

// ProjectName returns the project name carried by the first issue.
// A present but empty name is kept as is.
func (e *Export) ProjectName() string {
	if len(e.Issues) == 0 || e.Issues[0].ProjectName == nil {
		return UnknownProject
	}
	return *e.Issues[0].ProjectName
}

// GeneratedOn returns the date part of the first issue's update timestamp.
func (e *Export) GeneratedOn() string {
	if len(e.Issues) == 0 || e.Issues[0].UpdateDate == nil {
		return NotAvailable
	}
	date, _, _ := strings.Cut(*e.Issues[0].UpdateDate, "T")
	return date
}

// CounterMismatches reports declared counters that disagree with the issue list.
// Only total is checked: per-issue effort is a free-form duration and the
// export's effortTotal is not guaranteed to be its sum.
func (e *Export) CounterMismatches() []Mismatch {
	var mismatches []Mismatch
	if e.Total != len(e.Issues) {
		mismatches = append(mismatches, Mismatch{Counter: "total", Declared: e.Total, Actual: len(e.Issues)})
	}
	return mismatches
}

// LineText returns the issue line for display.
func (i Issue) LineText() string {
	if i.Line == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%d", *i.Line)
}
