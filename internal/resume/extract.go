// Package resume extracts plain text from uploaded resume files. Supported
// formats are plain text, PDF and DOCX; format detection is by file
// extension.
package resume

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/job-gap-analyzer/internal/textproc"
)

// ExtractFile reads the file at path and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume file: %w", err)
	}
	return Extract(data, filepath.Ext(path))
}

// Extract pulls plain text out of resume file bytes. ext is the file
// extension including the dot, matched case-insensitively. The result is
// cleaned of spurious blank lines and trimmed.
func Extract(data []byte, ext string) (string, error) {
	var text string
	var err error

	switch strings.ToLower(ext) {
	case ".txt", ".text", ".md":
		text = string(data)
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
		// The docx body arrives as raw XML; strip the tags.
		text = textproc.StripMarkup(text)
	default:
		return "", fmt.Errorf("unsupported resume format %q (want .txt, .pdf or .docx)", ext)
	}
	if err != nil {
		return "", err
	}
	return textproc.CleanText(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
