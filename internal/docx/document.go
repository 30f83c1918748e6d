// Package docx writes Office Open XML word-processing documents.
//
// Only the subset needed for tabular reports is supported: styled
// paragraphs, formatted runs, grid tables, page breaks and a default
// footer that may hold field codes such as PAGE.
package docx

import (
	"fmt"
	"strings"
	"time"
)

type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
)

const (
	StyleTitle     = "Title"
	StyleFooter    = "Footer"
	StyleTableGrid = "TableGrid"
)

// Color is an sRGB run color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color in the RRGGBB form used by w:color.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Run is a contiguous piece of text sharing the same formatting.
type Run struct {
	Text  string
	Bold  bool
	Size  float64 // points, 0 keeps the style size
	Color *Color

	field     string
	pageBreak bool
}

// Field returns the field instruction carried by the run, if any.
func (r *Run) Field() string {
	return r.field
}

// Paragraph is a block of runs with an optional paragraph style.
type Paragraph struct {
	Style     string
	Alignment Alignment
	Runs      []*Run
}

// AddRun appends a plain text run.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// AddField appends a field code that the reading application evaluates,
// e.g. "PAGE" for the current page number.
func (p *Paragraph) AddField(instruction string) *Run {
	r := &Run{field: instruction}
	p.Runs = append(p.Runs, r)
	return r
}

// Text returns the literal text of the paragraph; fields are not included.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (p *Paragraph) isPageBreak() bool {
	return len(p.Runs) == 1 && p.Runs[0].pageBreak
}

// Cell is a table cell. A cell always holds at least one paragraph.
type Cell struct {
	Paragraphs []*Paragraph
}

// SetText replaces the cell content with a single run and returns it.
func (c *Cell) SetText(text string) *Run {
	p := &Paragraph{}
	c.Paragraphs = []*Paragraph{p}
	return p.AddRun(text)
}

// Text returns the text of all cell paragraphs joined by newlines.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// Row is a table row.
type Row struct {
	Cells []*Cell
}

// Table is a fixed column grid.
type Table struct {
	Style string
	Rows  []*Row

	cols int
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.cols
}

// AddRow appends an empty row.
func (t *Table) AddRow() *Row {
	row := &Row{Cells: make([]*Cell, t.cols)}
	for i := range row.Cells {
		row.Cells[i] = &Cell{Paragraphs: []*Paragraph{{}}}
	}
	t.Rows = append(t.Rows, row)
	return row
}

// Cell returns the cell at row, col. It panics when out of range.
func (t *Table) Cell(row, col int) *Cell {
	return t.Rows[row].Cells[col]
}

// Document is an in-memory word-processing document with a single section.
type Document struct {
	Title   string
	Creator string
	Created time.Time

	body   []interface{}
	footer *Paragraph
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// AddHeading appends a heading paragraph. Level 0 uses the Title style,
// levels 1-3 use "Heading N".
func (d *Document) AddHeading(text string, level int) *Paragraph {
	style := StyleTitle
	if level > 0 {
		style = fmt.Sprintf("Heading%d", level)
	}
	return d.AddParagraph(text, style)
}

// AddParagraph appends a paragraph holding text in a single run.
func (d *Document) AddParagraph(text, style string) *Paragraph {
	p := &Paragraph{Style: style}
	if text != "" {
		p.AddRun(text)
	}
	d.body = append(d.body, p)
	return p
}

// AddPageBreak appends a paragraph that forces a new page.
func (d *Document) AddPageBreak() {
	d.body = append(d.body, &Paragraph{Runs: []*Run{{pageBreak: true}}})
}

// AddTable appends a table with the given number of empty rows.
func (d *Document) AddTable(rows, cols int) *Table {
	t := &Table{cols: cols}
	for i := 0; i < rows; i++ {
		t.AddRow()
	}
	d.body = append(d.body, t)
	return t
}

// Footer returns the default footer paragraph of the first section.
func (d *Document) Footer() *Paragraph {
	if d.footer == nil {
		d.footer = &Paragraph{Style: StyleFooter}
	}
	return d.footer
}

// Paragraphs returns body paragraphs in order, page breaks excluded.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.body {
		if p, ok := b.(*Paragraph); ok && !p.isPageBreak() {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns body tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.body {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// PageBreaks returns the number of explicit page breaks.
func (d *Document) PageBreaks() int {
	n := 0
	for _, b := range d.body {
		if p, ok := b.(*Paragraph); ok && p.isPageBreak() {
			n++
		}
	}
	return n
}
