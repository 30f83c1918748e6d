package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// US Letter with one inch margins, in twentieths of a point
	pageWidth    = 12240
	pageHeight   = 15840
	pageMargin   = 1440
	contentWidth = pageWidth - 2*pageMargin

	footerRelID = "rId2"
)

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="` + footerRelID + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>` +
	`</Relationships>`

// Write serialises the document as a .docx package to w.
func (d *Document) Write(w io.Writer) error {
	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", d.coreXML()},
		{"docProps/app.xml", []byte(appXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", d.documentXML()},
		{"word/footer1.xml", d.footerXML()},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create part %q: %w", part.name, err)
		}
		if _, err := fw.Write(part.content); err != nil {
			return fmt.Errorf("failed to write part %q: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalise package: %w", err)
	}
	return nil
}

// Bytes returns the serialised .docx package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<w:document xmlns:w="%s" xmlns:r="%s"><w:body>`, nsMain, nsRel)

	for _, b := range d.body {
		switch block := b.(type) {
		case *Paragraph:
			writeParagraph(&buf, block)
		case *Table:
			writeTable(&buf, block)
		}
	}

	buf.WriteString(`<w:sectPr>`)
	fmt.Fprintf(&buf, `<w:footerReference w:type="default" r:id="%s"/>`, footerRelID)
	fmt.Fprintf(&buf, `<w:pgSz w:w="%d" w:h="%d"/>`, pageWidth, pageHeight)
	fmt.Fprintf(&buf, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>`,
		pageMargin, pageMargin, pageMargin, pageMargin)
	buf.WriteString(`</w:sectPr></w:body></w:document>`)
	return buf.Bytes()
}

func (d *Document) footerXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	fmt.Fprintf(&buf, `<w:ftr xmlns:w="%s" xmlns:r="%s">`, nsMain, nsRel)
	footer := d.footer
	if footer == nil {
		footer = &Paragraph{}
	}
	writeParagraph(&buf, footer)
	buf.WriteString(`</w:ftr>`)
	return buf.Bytes()
}

func (d *Document) coreXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if d.Title != "" {
		fmt.Fprintf(&buf, `<dc:title>%s</dc:title>`, escape(d.Title))
	}
	if d.Creator != "" {
		fmt.Fprintf(&buf, `<dc:creator>%s</dc:creator>`, escape(d.Creator))
	}
	if !d.Created.IsZero() {
		fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`,
			d.Created.UTC().Format(time.RFC3339))
	}
	buf.WriteString(`</cp:coreProperties>`)
	return buf.Bytes()
}

func writeParagraph(buf *bytes.Buffer, p *Paragraph) {
	buf.WriteString(`<w:p>`)
	if p.Style != "" || p.Alignment != AlignDefault {
		buf.WriteString(`<w:pPr>`)
		if p.Style != "" {
			fmt.Fprintf(buf, `<w:pStyle w:val="%s"/>`, escape(p.Style))
		}
		if p.Alignment != AlignDefault {
			fmt.Fprintf(buf, `<w:jc w:val="%s"/>`, p.Alignment)
		}
		buf.WriteString(`</w:pPr>`)
	}
	for _, r := range p.Runs {
		writeRun(buf, r)
	}
	buf.WriteString(`</w:p>`)
}

func writeRun(buf *bytes.Buffer, r *Run) {
	if r.field != "" {
		// begin, instruction and end markers; the value is computed by the reader
		buf.WriteString(`<w:r>`)
		writeRunProperties(buf, r)
		buf.WriteString(`<w:fldChar w:fldCharType="begin"/></w:r>`)
		buf.WriteString(`<w:r>`)
		writeRunProperties(buf, r)
		fmt.Fprintf(buf, `<w:instrText xml:space="preserve">%s</w:instrText></w:r>`, escape(r.field))
		buf.WriteString(`<w:r>`)
		writeRunProperties(buf, r)
		buf.WriteString(`<w:fldChar w:fldCharType="end"/></w:r>`)
		return
	}

	buf.WriteString(`<w:r>`)
	writeRunProperties(buf, r)
	if r.pageBreak {
		buf.WriteString(`<w:br w:type="page"/>`)
	} else {
		fmt.Fprintf(buf, `<w:t xml:space="preserve">%s</w:t>`, escape(r.Text))
	}
	buf.WriteString(`</w:r>`)
}

func writeRunProperties(buf *bytes.Buffer, r *Run) {
	if !r.Bold && r.Color == nil && r.Size <= 0 {
		return
	}
	buf.WriteString(`<w:rPr>`)
	if r.Bold {
		buf.WriteString(`<w:b/>`)
	}
	if r.Color != nil {
		fmt.Fprintf(buf, `<w:color w:val="%s"/>`, r.Color.Hex())
	}
	if r.Size > 0 {
		// w:sz is expressed in half-points
		fmt.Fprintf(buf, `<w:sz w:val="%d"/>`, int(r.Size*2+0.5))
	}
	buf.WriteString(`</w:rPr>`)
}

func writeTable(buf *bytes.Buffer, t *Table) {
	colWidth := contentWidth
	if t.cols > 0 {
		colWidth = contentWidth / t.cols
	}

	buf.WriteString(`<w:tbl><w:tblPr>`)
	if t.Style != "" {
		fmt.Fprintf(buf, `<w:tblStyle w:val="%s"/>`, escape(t.Style))
	}
	buf.WriteString(`<w:tblW w:w="0" w:type="auto"/><w:tblLook w:val="04A0"/></w:tblPr><w:tblGrid>`)
	for i := 0; i < t.cols; i++ {
		fmt.Fprintf(buf, `<w:gridCol w:w="%d"/>`, colWidth)
	}
	buf.WriteString(`</w:tblGrid>`)

	for _, row := range t.Rows {
		buf.WriteString(`<w:tr>`)
		for _, cell := range row.Cells {
			fmt.Fprintf(buf, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, colWidth)
			paragraphs := cell.Paragraphs
			if len(paragraphs) == 0 {
				paragraphs = []*Paragraph{{}}
			}
			for _, p := range paragraphs {
				writeParagraph(buf, p)
			}
			buf.WriteString(`</w:tc>`)
		}
		buf.WriteString(`</w:tr>`)
	}
	buf.WriteString(`</w:tbl>`)
}

func escape(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText never fails on a bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
