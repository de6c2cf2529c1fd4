package rag

import (
	"strings"
	"testing"

	"ai-foundry-be/pkg/searchindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildContextEmpty(t *testing.T) {
	t.Run("whole library", func(t *testing.T) {
		got := BuildContext(nil, 0)
		assert.Equal(t, "No relevant documents found in your document library.", got)
	})

	t.Run("selected subset", func(t *testing.T) {
		got := BuildContext(nil, 3)
		assert.Equal(t, "No relevant content found in the selected 3 document(s). The selected documents may not contain information related to the query.", got)
	})
}

func TestBuildContextFormatting(t *testing.T) {
	results := []searchindex.Result{
		{
			DocumentName: "handbook.pdf",
			Content:      "Vacation policy details.",
			Metadata:     map[string]interface{}{"page": float64(4)},
		},
		{
			DocumentName: "faq.txt",
			Content:      "Frequently asked questions.",
		},
	}

	got := BuildContext(results, 0)

	assert.Contains(t, got, "Document: handbook.pdf\n")
	assert.Contains(t, got, "Content: Vacation policy details.\n")
	assert.Contains(t, got, "Source: Page 4\n")
	assert.Contains(t, got, "Document: faq.txt\n")
	assert.Equal(t, 1, strings.Count(got, "\n---\n"), "passages are separated by one divider")
	// No page metadata means no source line for that passage.
	assert.Equal(t, 1, strings.Count(got, "Source: Page"))
}

func TestPageFromMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]interface{}
		wantPage int
		wantOk   bool
	}{
		{"nil metadata", nil, 0, false},
		{"missing key", map[string]interface{}{"other": 1}, 0, false},
		{"float64 from json", map[string]interface{}{"page": float64(7)}, 7, true},
		{"int", map[string]interface{}{"page": 2}, 2, true},
		{"zero page", map[string]interface{}{"page": float64(0)}, 0, false},
		{"negative page", map[string]interface{}{"page": -1}, 0, false},
		{"wrong type", map[string]interface{}{"page": "5"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := PageFromMetadata(tt.metadata)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantPage, page)
		})
	}
}

func TestExtractSources(t *testing.T) {
	docId := uuid.New()
	long := strings.Repeat("a", 250)

	results := []searchindex.Result{
		{
			DocumentId:   docId,
			DocumentName: "report.pdf",
			Content:      long,
			Score:        0.91,
			Metadata:     map[string]interface{}{"page": float64(12)},
		},
		{
			DocumentName: "short.txt",
			Content:      "short content",
			Score:        0.42,
		},
	}

	sources := ExtractSources(results)

	assert.Len(t, sources, 2)
	assert.Equal(t, docId, sources[0].DocumentId)
	assert.Equal(t, "report.pdf", sources[0].DocumentName)
	assert.Equal(t, 0.91, sources[0].RelevanceScore)
	assert.Equal(t, strings.Repeat("a", 200)+"...", sources[0].Snippet)
	if assert.NotNil(t, sources[0].PageNumber) {
		assert.Equal(t, 12, *sources[0].PageNumber)
	}

	assert.Equal(t, "short content", sources[1].Snippet, "short passages are not truncated")
	assert.Nil(t, sources[1].PageNumber)
}

func TestExtractSourcesEmpty(t *testing.T) {
	sources := ExtractSources(nil)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)
}
