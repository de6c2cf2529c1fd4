package searchindex

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildHighlights(t *testing.T) {
	content := "The quick brown fox jumps over the lazy dog. " +
		strings.Repeat("filler text ", 30) +
		"A second mention of the fox appears much later in the document."

	t.Run("single term", func(t *testing.T) {
		highlights := buildHighlights(content, "fox")
		assert.Len(t, highlights, 1)
		assert.Contains(t, highlights[0], "fox")
		assert.LessOrEqual(t, len([]rune(highlights[0])), 2*highlightWindow+len("fox"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		highlights := buildHighlights(content, "FOX")
		assert.Len(t, highlights, 1)
	})

	t.Run("short terms skipped", func(t *testing.T) {
		highlights := buildHighlights(content, "a of is")
		assert.Empty(t, highlights)
	})

	t.Run("missing term", func(t *testing.T) {
		highlights := buildHighlights(content, "elephant")
		assert.Empty(t, highlights)
	})

	t.Run("capped at three", func(t *testing.T) {
		highlights := buildHighlights(content, "quick brown fox jumps lazy dog")
		assert.Len(t, highlights, maxHighlights)
	})

	t.Run("duplicate windows collapsed", func(t *testing.T) {
		highlights := buildHighlights("short text", "short text")
		// Both terms sit in the same 60-rune window.
		assert.Len(t, highlights, 1)
	})

	t.Run("window clamps at content edges", func(t *testing.T) {
		highlights := buildHighlights("fox", "fox")
		assert.Equal(t, []string{"fox"}, highlights)
	})

	t.Run("windows are whitespace normalized", func(t *testing.T) {
		highlights := buildHighlights("the quick\nbrown\t fox jumps", "fox")
		assert.Len(t, highlights, 1)
		assert.Equal(t, "the quick brown fox jumps", highlights[0])
	})
}

func TestRuneIndex(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     int
	}{
		{"hello world", "world", 6},
		{"hello", "hello", 0},
		{"hello", "xyz", -1},
		{"héllo wörld", "wörld", 6},
		{"abc", "abcd", -1},
		{"abc", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			got := runeIndex([]rune(tt.haystack), []rune(tt.needle))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-0.3))
	assert.Equal(t, 1.0, clampScore(1.2))
	assert.Equal(t, 0.75, clampScore(0.75))
}

func TestDisabledIndex(t *testing.T) {
	idx := NewDisabled()
	ctx := context.Background()

	assert.False(t, idx.Enabled())
	assert.False(t, idx.Index(ctx, Entry{DocumentId: uuid.New()}))

	results, err := idx.Query(ctx, "anything", uuid.New(), 5, nil)
	assert.NoError(t, err)
	assert.Empty(t, results)

	assert.NoError(t, idx.Delete(ctx, uuid.New()))
}
