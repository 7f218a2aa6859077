package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// docxText keeps the text of body paragraphs and tables, one block per line.
func docxText(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var blocks []string
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			blocks = append(blocks, fmt.Sprint(item))
		}
	}
	return strings.TrimRight(strings.Join(blocks, "\n"), "\n"), nil
}
