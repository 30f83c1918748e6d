package sonar

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	SeverityBlocker  = "BLOCKER"
	SeverityCritical = "CRITICAL"
	SeverityMajor    = "MAJOR"
	SeverityMinor    = "MINOR"
	SeverityInfo     = "INFO"

	TypeBug           = "BUG"
	TypeVulnerability = "VULNERABILITY"
	TypeCodeSmell     = "CODE_SMELL"
)

// SeverityOrder is the display order of severities, most severe first.
var SeverityOrder = []string{SeverityBlocker, SeverityCritical, SeverityMajor, SeverityMinor, SeverityInfo}

// TypeOrder is the display order of issue types.
var TypeOrder = []string{TypeBug, TypeVulnerability, TypeCodeSmell}

// Groups holds issues indexed by type, severity and trimmed component.
// Each group keeps the order in which issues appeared in the export.
type Groups struct {
	ByType      map[string][]Issue
	BySeverity  map[string][]Issue
	ByComponent map[string][]Issue

	components []string
}

// Categorize groups issues by type, severity and trimmed component.
func Categorize(issues []Issue) *Groups {
	g := &Groups{
		ByType:      make(map[string][]Issue),
		BySeverity:  make(map[string][]Issue),
		ByComponent: make(map[string][]Issue),
	}

	for _, issue := range issues {
		g.ByType[issue.Type] = append(g.ByType[issue.Type], issue)
		g.BySeverity[issue.Severity] = append(g.BySeverity[issue.Severity], issue)

		component := TrimComponent(issue.Component)
		if _, seen := g.ByComponent[component]; !seen {
			g.components = append(g.components, component)
		}
		g.ByComponent[component] = append(g.ByComponent[component], issue)
	}

	return g
}

// Components returns component keys in first-seen order.
func (g *Groups) Components() []string {
	out := make([]string, len(g.components))
	copy(out, g.components)
	return out
}

// TrimComponent strips the leading "<project-key>:" from a component identifier.
func TrimComponent(component string) string {
	if _, path, found := strings.Cut(component, ":"); found {
		return path
	}
	return component
}

// FileName returns the last path element of a trimmed component.
func FileName(component string) string {
	if i := strings.LastIndex(component, "/"); i >= 0 {
		return component[i+1:]
	}
	return component
}

// TypeDisplayName turns an issue type such as CODE_SMELL into "Code Smell".
func TypeDisplayName(issueType string) string {
	normalized := strings.ReplaceAll(issueType, "_", " ")
	return cases.Title(language.Und).String(strings.ToLower(normalized))
}
