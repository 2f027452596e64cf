// Package docparse extracts plain text from uploaded resume files.
package docparse

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for anything but pdf, docx and txt.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and txt are allowed")

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// ExtractText picks the parser from the file extension, falling back to
// the declared content type.
func ExtractText(filename, contentType string, data []byte) (string, error) {
	kind := strings.ToLower(filepath.Ext(filename))
	if kind == "" {
		switch strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0])) {
		case mimePDF:
			kind = ".pdf"
		case mimeDOCX:
			kind = ".docx"
		case mimeText:
			kind = ".txt"
		}
	}

	var (
		text string
		err  error
	)
	switch kind {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".txt":
		text = string(data)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}
	return normalizeWhitespace(text), nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var xmlTags = regexp.MustCompile(`<[^>]+>`)

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	return xmlTags.ReplaceAllString(content, " "), nil
}

var (
	inlineSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLines  = regexp.MustCompile(`\n\s*\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = inlineSpace.ReplaceAllString(s, " ")
	s = blankLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
