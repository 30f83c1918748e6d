package report

import (
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatDOCX  Format = "docx"
	FormatPDF   Format = "pdf"
	FormatSARIF Format = "sarif"
)

// Formats lists supported output formats, default first.
var Formats = []Format{FormatDOCX, FormatPDF, FormatSARIF}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q, expected one of %s", s, FormatNames())
}

// FormatNames returns the supported formats as a comma separated list.
func FormatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// DefaultFileName is the output name used when only a folder is given.
func (f Format) DefaultFileName() string {
	return "SonarCloud_Detailed_Report." + string(f)
}

// Renderer writes a report in a specific output format.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// NewRenderer returns the renderer for format f.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatDOCX:
		return &DOCXRenderer{}, nil
	case FormatPDF:
		return &PDFRenderer{}, nil
	case FormatSARIF:
		return &SARIFRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", f)
	}
}
