package export

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	rowHeight    = 7.0
	headerHeight = 8.0
	footerSpace  = 12.0
	minColumn    = 14.0
)

// PDFRenderer lays a Dataset out as an A4 table with a title and page footer.
type PDFRenderer struct {
	now func() time.Time
}

// NewPDFRenderer builds a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

// Render produces the document. Tables with more than five columns use landscape.
func (r *PDFRenderer) Render(data Dataset, title string) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	orientation, usable := "P", 190.0
	if len(data.Headers) > 5 {
		orientation, usable = "L", 277.0
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := r.now().UTC().Format("02 Jan 2006 15:04 MST")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerSpace)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("MeepleMeet - generated %s - page %d", generated, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d rows", len(data.Rows)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	widths := columnWidths(data, usable)
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(225, 232, 240)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], headerHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for n, row := range data.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom-footerSpace {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(246, 248, 250)
		for i, cell := range row {
			text := fit(pdf, tr(cell), widths[i]-2)
			pdf.CellFormat(widths[i], rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths splits usable width in proportion to the longest cell of each column.
func columnWidths(data Dataset, usable float64) []float64 {
	weights := make([]float64, len(data.Headers))
	total := 0.0
	for i, h := range data.Headers {
		longest := utf8.RuneCountInString(h)
		for _, row := range data.Rows {
			if n := utf8.RuneCountInString(row[i]); n > longest {
				longest = n
			}
		}
		if longest > 40 {
			longest = 40
		}
		weights[i] = float64(longest) + 2
		total += weights[i]
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = usable * w / total
		if widths[i] < minColumn {
			widths[i] = minColumn
		}
	}
	return widths
}

// fit truncates text with an ellipsis so it renders within width.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
