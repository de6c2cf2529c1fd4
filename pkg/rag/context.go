package rag

import (
	"fmt"
	"strings"

	"ai-foundry-be/pkg/searchindex"
)

// The two empty-context markers are distinguishable on purpose: the
// fallback generator and the model instructions treat "nothing in the
// selected documents" differently from "nothing in the whole library".
const (
	subsetEmptyPrefix  = "No relevant content found in the selected"
	libraryEmptyMarker = "No relevant documents found in your document library."
)

// BuildContext renders retrieved passages into the prompt context block.
// subsetSize is the number of documents the user explicitly selected, zero
// when the whole library was searched.
func BuildContext(results []searchindex.Result, subsetSize int) string {
	if len(results) == 0 {
		if subsetSize > 0 {
			return fmt.Sprintf("%s %d document(s). The selected documents may not contain information related to the query.", subsetEmptyPrefix, subsetSize)
		}
		return libraryEmptyMarker
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "Document: %s\n", result.DocumentName)
		fmt.Fprintf(&b, "Content: %s\n", result.Content)
		if page, ok := PageFromMetadata(result.Metadata); ok {
			fmt.Fprintf(&b, "Source: Page %d\n", page)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n---\n")
}

// PageFromMetadata pulls a page number out of passage metadata. JSON
// round-trips hand back float64 for numbers.
func PageFromMetadata(metadata map[string]interface{}) (int, bool) {
	if metadata == nil {
		return 0, false
	}
	switch v := metadata["page"].(type) {
	case float64:
		if v > 0 {
			return int(v), true
		}
	case int:
		if v > 0 {
			return v, true
		}
	}
	return 0, false
}
