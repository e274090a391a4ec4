package render

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 25.4 // one inch, in mm
	pdfFontSize   = 12
	pdfLineHeight = 6
)

// writeTextPDF typesets plain text onto a single Letter page with a
// fixed font, wrapping lines against the font metrics. Text beyond the
// page is clipped rather than overflowing onto a second page.
func writeTextPDF(path, text string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	usableWidth := pageWidth - 2*pdfMargin
	bottom := pageHeight - pdfMargin

	y := pdfMargin
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			y += pdfLineHeight
			continue
		}
		for _, line := range pdf.SplitText(paragraph, usableWidth) {
			if y > bottom {
				break
			}
			pdf.SetXY(pdfMargin, y)
			pdf.CellFormat(usableWidth, pdfLineHeight, line, "", 0, "L", false, 0, "")
			y += pdfLineHeight
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
