package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const placeholderMarker = "requires the document analysis service to be configured"

// TextExtractor turns uploaded file bytes into plain text. Plain text and
// PDF are handled locally; every other type is delegated to the document
// analyzer. When the analyzer is not configured the result is a descriptive
// placeholder, detectable via IsPlaceholder, so processing still completes.
type TextExtractor struct {
	analyzer DocumentAnalyzer
}

func NewTextExtractor(analyzer DocumentAnalyzer) *TextExtractor {
	return &TextExtractor{analyzer: analyzer}
}

func (e *TextExtractor) Extract(ctx context.Context, content []byte, fileType string) (string, error) {
	switch fileType {
	case "text/plain":
		return string(content), nil
	case "application/pdf":
		text, err := extractPDFText(content)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		// Scanned or malformed PDFs carry no text layer; the analyzer
		// can still OCR them.
		if e.analyzer.Enabled() {
			return e.analyzer.Analyze(ctx, content, fileType)
		}
		if err != nil {
			return "", fmt.Errorf("pdf extraction: %w", err)
		}
		return placeholderFor(fileType), nil
	default:
		text, err := e.analyzer.Analyze(ctx, content, fileType)
		if errors.Is(err, ErrNotConfigured) {
			return placeholderFor(fileType), nil
		}
		return text, err
	}
}

// IsPlaceholder reports whether text is a stand-in produced because the
// document analyzer was unavailable, rather than real extracted content.
func IsPlaceholder(text string) bool {
	return strings.Contains(text, placeholderMarker)
}

func placeholderFor(fileType string) string {
	var kind string
	switch fileType {
	case "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		kind = "Word documents"
	case "image/jpeg", "image/png":
		kind = "images"
	case "application/pdf":
		kind = "scanned PDF documents"
	default:
		kind = "this file type"
	}
	return fmt.Sprintf("Text extraction for %s %s.", kind, placeholderMarker)
}
