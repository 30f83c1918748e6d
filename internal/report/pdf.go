package report

import (
	"fmt"
	"io"

	gofpdf "github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 5.0
)

// widths of the issue table columns on an A4 landscape page, in mm
var pdfIssueColumnWidths = []float64{38, 30, 24, 40, 14, 113, 18}

// PDFRenderer renders a report as a PDF document.
type PDFRenderer struct {
	DisableCompression bool
}

func (pr *PDFRenderer) Render(w io.Writer, r *Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(!pr.DisableCompression)
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("sonar-report", true)
	if !r.Created.IsZero() {
		pdf.SetCreationDate(r.Created)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// PageNo is resolved by fpdf when each page is closed
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pr.addTitlePage(pdf, r, tr)
	pr.addSummary(pdf, r, tr)
	pr.addIssues(pdf, r, tr)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func (pr *PDFRenderer) addTitlePage(pdf *gofpdf.Fpdf, r *Report, tr func(string) string) {
	pdf.AddPage()
	pdf.Ln(50)

	pdf.SetFont(pdfFont, "B", 26)
	pdf.SetTextColor(23, 54, 93)
	pdf.CellFormat(0, 14, tr(r.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 16)
	pdf.SetTextColor(79, 129, 189)
	pdf.CellFormat(0, 10, tr(r.ProjectLine()), "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFont, "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr(r.GeneratedLine()), "", 1, "C", false, 0, "")
	for _, m := range r.Repository {
		pdf.CellFormat(0, 7, tr(m.Name+": "+m.Value), "", 1, "C", false, 0, "")
	}
}

func (pr *PDFRenderer) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(pdfFont, "B", 16)
	pdf.SetTextColor(54, 95, 145)
	pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetTextColor(0, 0, 0)
}

func (pr *PDFRenderer) addSummary(pdf *gofpdf.Fpdf, r *Report, tr func(string) string) {
	pdf.AddPage()
	pr.addSectionHeader(pdf, ExecutiveSummaryHeading)

	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(90, 8, SummaryHeaders[0], "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, SummaryHeaders[1], "1", 1, "L", false, 0, "")
	for _, m := range r.Summary {
		pdf.CellFormat(90, 8, tr(m.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, tr(m.Value), "1", 1, "L", false, 0, "")
	}
}

func (pr *PDFRenderer) addIssues(pdf *gofpdf.Fpdf, r *Report, tr func(string) string) {
	pdf.AddPage()
	pr.addSectionHeader(pdf, AllIssuesHeading)
	pr.addIssueHeader(pdf)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	for _, row := range r.Rows {
		cells := row.Cells()

		pdf.SetFont(pdfFont, "", 9)
		lines := 1
		for i, value := range cells {
			if n := len(pdf.SplitLines([]byte(tr(value)), pdfIssueColumnWidths[i])); n > lines {
				lines = n
			}
		}
		rowHeight := float64(lines) * pdfLineHeight

		if pdf.GetY()+rowHeight > pageHeight-bottomMargin-15 {
			pdf.AddPage()
			pr.addIssueHeader(pdf)
		}

		x, y := pdf.GetXY()
		left := x
		for i, value := range cells {
			width := pdfIssueColumnWidths[i]
			pdf.Rect(x, y, width, rowHeight, "D")
			pdf.SetXY(x, y)
			if i == SeverityColumn {
				pdf.SetFont(pdfFont, "B", 9)
				pdf.SetTextColor(int(row.Color.R), int(row.Color.G), int(row.Color.B))
			}
			pdf.MultiCell(width, pdfLineHeight, tr(value), "", "L", false)
			pdf.SetFont(pdfFont, "", 9)
			pdf.SetTextColor(0, 0, 0)
			x += width
		}
		pdf.SetXY(left, y+rowHeight)
	}
}

func (pr *PDFRenderer) addIssueHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", HeaderFontSize)
	pdf.SetTextColor(0, 0, 0)
	for i, header := range IssueHeaders {
		ln := 0
		if i == len(IssueHeaders)-1 {
			ln = 1
		}
		pdf.CellFormat(pdfIssueColumnWidths[i], 7, header, "1", ln, "L", false, 0, "")
	}
}
