// Package pdftext turns statement documents into the plain text the balance
// extractors scan.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Extract returns the text of the PDF at path, one line per text row, with
// pages in order. Rows are rebuilt from glyph positions so that lines placed
// with Td or Tm moves stay separate.
func Extract(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extracting text from %s page %d: %w", path, i, err)
		}
		for _, row := range rows {
			for _, t := range row.Content {
				sb.WriteString(t.S)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// IsPDF reports whether path names a PDF document.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Read returns the statement text at path: PDFs are extracted, any other file
// is taken to be text that was already extracted.
func Read(path string) (string, error) {
	if IsPDF(path) {
		return Extract(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading statement text: %w", err)
	}
	return string(data), nil
}
