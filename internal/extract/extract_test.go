package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// buildDocx packs a minimal WordprocessingML package around body.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	parts := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", body},
	}
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := writer.Create(part.name)
		if err != nil {
			t.Fatalf("create %s: %v", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			t.Fatalf("write %s: %v", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// buildPDF lays out numbered objects and writes a matching xref table.
func buildPDF(objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"notes.PDF":    FormatPDF,
		"essay.docx":   FormatDOCX,
		"plain.txt":    FormatText,
		"slides.pptx":  "",
		"no-extension": "",
	}
	for name, want := range tests {
		if got := FormatOf(name); got != want {
			t.Fatalf("FormatOf(%q) = %q, want %q", name, got, want)
		}
	}
}

// TestTextPlain verifies text files pass through unchanged.
func TestTextPlain(t *testing.T) {
	text, err := Text("notes.txt", []byte("The sky is blue."))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "The sky is blue." {
		t.Fatalf("unexpected text %q", text)
	}
	if _, err := Text("bad.txt", []byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Fatalf("expected invalid utf-8 error")
	}
}

// TestTextUnsupportedIsSilent verifies unknown extensions yield empty text.
func TestTextUnsupportedIsSilent(t *testing.T) {
	text, err := Text("slides.pptx", []byte("binary"))
	if err != nil || text != "" {
		t.Fatalf("expected empty text and no error, got %q, %v", text, err)
	}
}

// TestTextDOCX verifies each paragraph lands on its own line.
func TestTextDOCX(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Photosynthesis uses light.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Plants store sugar.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	text, err := Text("bio.docx", buildDocx(t, body))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 || strings.TrimSpace(lines[0]) != "Photosynthesis uses light." || strings.TrimSpace(lines[1]) != "Plants store sugar." {
		t.Fatalf("unexpected text %q", text)
	}
}

// TestTextDOCXRejectsNonArchive verifies bytes that are not a zip package fail.
func TestTextDOCXRejectsNonArchive(t *testing.T) {
	if _, err := Text("essay.docx", []byte("plain words, not a package")); err == nil {
		t.Fatalf("expected docx error")
	}
}

// TestTextPDFRejectsGarbage verifies malformed PDFs return an error.
func TestTextPDFRejectsGarbage(t *testing.T) {
	if _, err := Text("broken.pdf", []byte("not a pdf")); err == nil {
		t.Fatalf("expected pdf error")
	}
}

// TestTextPDFSkipsBlankPages verifies a page without content contributes
// nothing instead of failing the document.
func TestTextPDFSkipsBlankPages(t *testing.T) {
	content := "BT (hi) Tj ET"
	data := buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R >>",
		"<< /Type /Page /Parent 2 0 R /Contents 5 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	)
	text, err := Text("notes.pdf", data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "hi" {
		t.Fatalf("unexpected text %q", text)
	}

	blank := buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R >>",
	)
	text, err = Text("blank.pdf", blank)
	if err != nil || text != "" {
		t.Fatalf("expected empty text for a blank page, got %q, %v", text, err)
	}
}
