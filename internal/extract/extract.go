// Package extract turns uploaded documents into flat text.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Format identifies a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// FormatOf returns the document format for a file name, or "" when the
// extension is not supported.
func FormatOf(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "pdf":
		return FormatPDF
	case "docx":
		return FormatDOCX
	case "txt":
		return FormatText
	default:
		return ""
	}
}

// Supported reports whether name has an extension Text can read.
func Supported(name string) bool {
	return FormatOf(name) != ""
}

// Text extracts the plain text of a document. Unsupported extensions yield
// an empty string and no error.
func Text(name string, data []byte) (string, error) {
	switch FormatOf(name) {
	case FormatPDF:
		return pdfText(data)
	case FormatDOCX:
		return docxText(data)
	case FormatText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract %s: not valid utf-8", name)
		}
		return string(data), nil
	default:
		return "", nil
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		// A page without a content stream is blank.
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}
