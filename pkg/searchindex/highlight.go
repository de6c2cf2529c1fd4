package searchindex

import (
	"strings"

	"ai-foundry-be/pkg/utils"
)

const (
	highlightWindow = 60
	maxHighlights   = 3
	minTermLength   = 3
)

// buildHighlights returns short text windows around query-term matches in
// content. Terms shorter than three runes are skipped; at most three
// windows come back.
func buildHighlights(content, query string) []string {
	lowerContent := strings.ToLower(content)
	contentRunes := []rune(content)
	lowerRunes := []rune(lowerContent)

	var highlights []string
	seen := make(map[string]bool)

	for _, term := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(term)) < minTermLength {
			continue
		}
		idx := runeIndex(lowerRunes, []rune(term))
		if idx < 0 {
			continue
		}

		start := idx - highlightWindow
		if start < 0 {
			start = 0
		}
		end := idx + len([]rune(term)) + highlightWindow
		if end > len(contentRunes) {
			end = len(contentRunes)
		}

		window := utils.NormalizeSpace(string(contentRunes[start:end]))
		if window == "" || seen[window] {
			continue
		}
		seen[window] = true
		highlights = append(highlights, window)

		if len(highlights) >= maxHighlights {
			break
		}
	}
	return highlights
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
