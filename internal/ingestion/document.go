package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ReadDocument reads a job description file and returns its plain text.
// The format is chosen by extension: .txt, .md (or none), .html, .htm, .pdf and .docx.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return DecodeDocument(filepath.Ext(path), data)
}

// DecodeDocument converts raw document bytes to plain text based on a file extension.
func DecodeDocument(ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case "", ".txt", ".md", ".markdown":
		return CleanText(string(data)), nil
	case ".html", ".htm":
		return ExtractHTMLText(string(data))
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported document type: %s", ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return CleanText(sb.String()), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// The editable content is WordprocessingML; paragraph ends become line breaks.
	xml := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "</w:p>\n")
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(xml))
	if err != nil {
		return "", fmt.Errorf("failed to read docx content: %w", err)
	}
	return CleanText(parsed.Text()), nil
}
