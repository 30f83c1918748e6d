package report

import (
	"io"

	"github.com/scan-io-git/sonar-report/internal/docx"
)

const pageField = "PAGE"

// DOCXRenderer renders a report as a Word document.
type DOCXRenderer struct{}

func (dr *DOCXRenderer) Render(w io.Writer, r *Report) error {
	return dr.Document(r).Write(w)
}

// Document lays the report out as an in-memory document.
func (dr *DOCXRenderer) Document(r *Report) *docx.Document {
	doc := docx.New()
	doc.Title = r.Title
	doc.Creator = "sonar-report"
	doc.Created = r.Created

	doc.AddHeading(r.Title, 0).Alignment = docx.AlignCenter
	doc.AddParagraph(r.ProjectLine(), "Heading2").Alignment = docx.AlignCenter
	doc.AddParagraph(r.GeneratedLine(), "").Alignment = docx.AlignCenter
	for _, m := range r.Repository {
		doc.AddParagraph(m.Name+": "+m.Value, "").Alignment = docx.AlignCenter
	}

	doc.AddPageBreak()
	doc.AddHeading(ExecutiveSummaryHeading, 1)

	summary := doc.AddTable(1, len(SummaryHeaders))
	summary.Style = docx.StyleTableGrid
	for i, header := range SummaryHeaders {
		summary.Cell(0, i).SetText(header)
	}
	for _, m := range r.Summary {
		row := summary.AddRow()
		row.Cells[0].SetText(m.Name)
		row.Cells[1].SetText(m.Value)
	}

	doc.AddPageBreak()
	doc.AddHeading(AllIssuesHeading, 1)

	issues := doc.AddTable(1, len(IssueHeaders))
	issues.Style = docx.StyleTableGrid
	for i, header := range IssueHeaders {
		run := issues.Cell(0, i).SetText(header)
		run.Bold = true
		run.Size = HeaderFontSize
	}
	for _, issue := range r.Rows {
		row := issues.AddRow()
		for i, value := range issue.Cells() {
			run := row.Cells[i].SetText(value)
			if i == SeverityColumn {
				run.Bold = true
				run.Color = &docx.Color{R: issue.Color.R, G: issue.Color.G, B: issue.Color.B}
			}
		}
	}

	footer := doc.Footer()
	footer.Alignment = docx.AlignRight
	footer.AddField(pageField)

	return doc
}
