package report

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/sonar-report/internal/docx"
	"github.com/scan-io-git/sonar-report/internal/sonar"
)

func tableTexts(table *docx.Table) [][]string {
	out := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cell.Text())
		}
		out = append(out, cells)
	}
	return out
}

func TestDOCXDocumentLayout(t *testing.T) {
	r := buildReport(sampleExport(), Options{})
	doc := (&DOCXRenderer{}).Document(r)

	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs, 5)
	assert.Equal(t, Title, paragraphs[0].Text())
	assert.Equal(t, docx.StyleTitle, paragraphs[0].Style)
	assert.Equal(t, docx.AlignCenter, paragraphs[0].Alignment)
	assert.Equal(t, "Project: Acme", paragraphs[1].Text())
	assert.Equal(t, "Heading2", paragraphs[1].Style)
	assert.Equal(t, docx.AlignCenter, paragraphs[1].Alignment)
	assert.Equal(t, "Generated on: 2024-05-02", paragraphs[2].Text())
	assert.Equal(t, docx.AlignCenter, paragraphs[2].Alignment)
	assert.Equal(t, ExecutiveSummaryHeading, paragraphs[3].Text())
	assert.Equal(t, "Heading1", paragraphs[3].Style)
	assert.Equal(t, AllIssuesHeading, paragraphs[4].Text())
	assert.Equal(t, 2, doc.PageBreaks())

	tables := doc.Tables()
	require.Len(t, tables, 2)

	summary := tables[0]
	assert.Equal(t, docx.StyleTableGrid, summary.Style)
	summaryTexts := tableTexts(summary)
	assert.Equal(t, []string{"Metric", "Value"}, summaryTexts[0])
	assert.Equal(t, []string{"Total Issues", "4"}, summaryTexts[1])
	assert.Len(t, summaryTexts, 1+len(r.Summary))

	issues := tables[1]
	assert.Equal(t, docx.StyleTableGrid, issues.Style)
	require.Len(t, issues.Rows, 1+len(r.Rows))
	for i, header := range IssueHeaders {
		cell := issues.Cell(0, i)
		assert.Equal(t, header, cell.Text())
		run := cell.Paragraphs[0].Runs[0]
		assert.True(t, run.Bold)
		assert.Equal(t, float64(10), run.Size)
	}

	blocker := issues.Cell(3, SeverityColumn).Paragraphs[0].Runs[0]
	assert.Equal(t, sonar.SeverityBlocker, blocker.Text)
	assert.True(t, blocker.Bold)
	require.NotNil(t, blocker.Color)
	assert.Equal(t, docx.Color{R: 192, G: 0, B: 0}, *blocker.Color)

	plain := issues.Cell(3, 0).Paragraphs[0].Runs[0]
	assert.False(t, plain.Bold)
	assert.Nil(t, plain.Color)

	footer := doc.Footer()
	assert.Equal(t, docx.AlignRight, footer.Alignment)
	require.Len(t, footer.Runs, 1)
	assert.Equal(t, "PAGE", footer.Runs[0].Field())
	assert.Empty(t, footer.Text())
}

func TestDOCXUnknownSeverityIsBlack(t *testing.T) {
	export := &sonar.Export{Issues: []sonar.Issue{{Key: "X", Type: "SECURITY_HOTSPOT", Severity: "TRIVIAL", Component: "a.go"}}}
	doc := (&DOCXRenderer{}).Document(buildReport(export, Options{}))

	run := doc.Tables()[1].Cell(1, SeverityColumn).Paragraphs[0].Runs[0]
	require.NotNil(t, run.Color)
	assert.Equal(t, docx.Color{}, *run.Color)
	assert.True(t, run.Bold)
}

func TestDOCXEmptyReport(t *testing.T) {
	doc := (&DOCXRenderer{}).Document(buildReport(&sonar.Export{}, Options{}))

	paragraphs := doc.Paragraphs()
	assert.Equal(t, "Project: Unknown Project", paragraphs[1].Text())
	assert.Equal(t, "Generated on: N/A", paragraphs[2].Text())

	tables := doc.Tables()
	assert.Len(t, tables[0].Rows, 4)
	assert.Len(t, tables[1].Rows, 1)
}

func TestDOCXRenderIsStable(t *testing.T) {
	render := func() map[string]string {
		var buf bytes.Buffer
		require.NoError(t, (&DOCXRenderer{}).Render(&buf, buildReport(sampleExport(), Options{})))

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		parts := map[string]string{}
		for _, f := range zr.File {
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			parts[f.Name] = string(b)
		}
		return parts
	}

	first, second := render(), render()
	assert.Equal(t, first["word/document.xml"], second["word/document.xml"])
	assert.Equal(t, 1+len(sampleExport().Issues)+len(buildReport(sampleExport(), Options{}).Summary)+1,
		strings.Count(first["word/document.xml"], "<w:tr>"))
	assert.Contains(t, first["word/footer1.xml"], `<w:instrText xml:space="preserve">PAGE</w:instrText>`)
	assert.Contains(t, first["word/document.xml"], `<w:color w:val="C00000"/>`)
}

func TestPDFRender(t *testing.T) {
	var buf bytes.Buffer
	err := (&PDFRenderer{DisableCompression: true}).Render(&buf, buildReport(sampleExport(), Options{}))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "%%EOF")
	assert.Contains(t, out, "SonarCloud Code Quality Report")
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "handler.go")
}

func TestPDFRenderEmptyAndLong(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PDFRenderer{}).Render(&buf, buildReport(&sonar.Export{}, Options{})))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))

	export := &sonar.Export{Total: 200}
	for i := 0; i < 200; i++ {
		export.Issues = append(export.Issues, sonar.Issue{
			Key: "K", Type: sonar.TypeBug, Severity: sonar.SeverityInfo, Component: "p:src/x.go",
			Message: strings.Repeat("a very long message that wraps ", 8), Effort: "1min",
		})
	}
	buf.Reset()
	require.NoError(t, (&PDFRenderer{}).Render(&buf, buildReport(export, Options{})))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestSARIFRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFRenderer{}).Render(&buf, buildReport(sampleExport(), Options{})))

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region *struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
				Properties map[string]interface{} `json:"properties"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "SonarCloud", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 3)
	require.Len(t, run.Results, 4)

	first := run.Results[0]
	assert.Equal(t, "sonar:CODE_SMELL", first.RuleID)
	assert.Equal(t, "note", first.Level)
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "src/util/strings.go", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	require.NotNil(t, first.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 7, first.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "K1", first.Properties["key"])
	assert.Equal(t, float64(5), first.Properties["effortMinutes"])

	assert.Equal(t, "error", run.Results[1].Level)
	assert.Nil(t, run.Results[1].Locations[0].PhysicalLocation.Region)
}

func TestSARIFLevel(t *testing.T) {
	assert.Equal(t, "error", SARIFLevel(sonar.SeverityBlocker))
	assert.Equal(t, "error", SARIFLevel(sonar.SeverityCritical))
	assert.Equal(t, "warning", SARIFLevel(sonar.SeverityMajor))
	assert.Equal(t, "note", SARIFLevel(sonar.SeverityMinor))
	assert.Equal(t, "note", SARIFLevel(sonar.SeverityInfo))
	assert.Equal(t, "warning", SARIFLevel("UNKNOWN"))
}

func TestSARIFRuleID(t *testing.T) {
	assert.Equal(t, "go:S1234", SARIFRuleID(sonar.Issue{Rule: "go:S1234", Type: sonar.TypeBug}))
	assert.Equal(t, "sonar:BUG", SARIFRuleID(sonar.Issue{Type: sonar.TypeBug}))
}

func TestSARIFRuleKeepsFirstSeverity(t *testing.T) {
	export := &sonar.Export{Total: 2, Issues: []sonar.Issue{
		{Key: "A", Type: sonar.TypeBug, Severity: sonar.SeverityBlocker, Component: "p:a.go", Rule: "go:S1", Effort: "1min"},
		{Key: "B", Type: sonar.TypeBug, Severity: sonar.SeverityInfo, Component: "p:b.go", Rule: "go:S1", Effort: "1min"},
	}}

	log, err := (&SARIFRenderer{}).Log(buildReport(export, Options{}))
	require.NoError(t, err)

	rules := log.Runs[0].Tool.Driver.Rules
	require.Len(t, rules, 1)
	require.NotNil(t, rules[0].DefaultConfiguration)
	assert.Equal(t, "error", rules[0].DefaultConfiguration.Level)

	results := log.Runs[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, "error", *results[0].Level)
	assert.Equal(t, "note", *results[1].Level)
}
