package report

import (
	"fmt"
	"strings"
)

// RenderText renders the document as plain text for console output. Image
// sections list the artifact names instead of embedding anything.
func RenderText(doc *Document) string {
	var b strings.Builder

	b.WriteString(doc.Title + "\n")
	b.WriteString("Author: " + doc.Author + "\n\n")

	for _, sec := range doc.Sections {
		b.WriteString(sec.Heading + "\n")
		b.WriteString(strings.Repeat("-", len(sec.Heading)) + "\n")

		if sec.Body != "" {
			b.WriteString(sec.Body + "\n")
		}
		if sec.Table != nil {
			writeTextTable(&b, sec.Table)
		}
		for _, img := range sec.Images {
			fmt.Fprintf(&b, "[plot: %s]\n", img)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeTextTable(b *strings.Builder, t *Table) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			fmt.Fprintf(b, "%-*s  ", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
}
