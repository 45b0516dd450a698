package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// pdf layout constants, A4 portrait in millimeters.
const (
	pdfMargin     = 15.0
	pdfLineHeight = 5.5
	pdfCellHeight = 7.0
	pdfImageWidth = 150.0
)

// RenderPDF renders the document to <dir>/simulation_report.pdf. Image
// sections reference PNG files by name, resolved relative to dir; the plots
// must already exist there. File-write failures are returned unmodified.
func RenderPDF(doc *Document, dir string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Title and author line.
	pdf.SetFont("Helvetica", "B", 15)
	pdf.MultiCell(0, 7, doc.Title, "", "C", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, pdfLineHeight, "Author: "+doc.Author, "", "C", false)
	pdf.Ln(4)

	for _, sec := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, sec.Heading, "", "L", false)
		pdf.Ln(1)

		if sec.Body != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, pdfLineHeight, sec.Body, "", "L", false)
		}

		if sec.Table != nil {
			renderTable(pdf, sec.Table)
		}

		for _, name := range sec.Images {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				return "", fmt.Errorf("plot %s: %w", name, err)
			}
			pdf.ImageOptions(path, pdfMargin, -1, pdfImageWidth, 0, true,
				fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			pdf.Ln(2)
		}

		pdf.Ln(4)
	}

	out := filepath.Join(dir, ReportFileName)
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", err
	}
	return out, nil
}

// renderTable draws a grey-headed, gridded table in the original report's
// style. Column widths: wide metric column, equal numeric columns.
func renderTable(pdf *fpdf.Fpdf, t *Table) {
	usable := 210.0 - 2*pdfMargin
	metricWidth := 62.0
	numWidth := (usable - metricWidth) / float64(len(t.Header)-1)

	widths := make([]float64, len(t.Header))
	widths[0] = metricWidth
	for i := 1; i < len(widths); i++ {
		widths[i] = numWidth
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(211, 211, 211)
	for i, h := range t.Header {
		pdf.CellFormat(widths[i], pdfCellHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], pdfCellHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}
