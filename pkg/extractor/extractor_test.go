package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAnalyzer struct {
	text string
	err  error

	called bool
}

func (a *stubAnalyzer) Analyze(ctx context.Context, content []byte, fileType string) (string, error) {
	a.called = true
	return a.text, a.err
}

func (a *stubAnalyzer) Enabled() bool { return true }

func TestExtractPlainText(t *testing.T) {
	e := NewTextExtractor(NewDisabledAnalyzer())

	text, err := e.Extract(context.Background(), []byte("hello world"), "text/plain")

	assert.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractDelegatesToAnalyzer(t *testing.T) {
	analyzer := &stubAnalyzer{text: "analyzed content"}
	e := NewTextExtractor(analyzer)

	text, err := e.Extract(context.Background(), []byte{0x01}, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	assert.NoError(t, err)
	assert.True(t, analyzer.called)
	assert.Equal(t, "analyzed content", text)
}

func TestExtractPlaceholderWhenAnalyzerDisabled(t *testing.T) {
	e := NewTextExtractor(NewDisabledAnalyzer())

	tests := []struct {
		fileType string
		wantKind string
	}{
		{"application/msword", "Word documents"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "Word documents"},
		{"image/png", "images"},
		{"image/jpeg", "images"},
		{"application/octet-stream", "this file type"},
	}

	for _, tt := range tests {
		t.Run(tt.fileType, func(t *testing.T) {
			text, err := e.Extract(context.Background(), []byte{0x01}, tt.fileType)
			assert.NoError(t, err)
			assert.Contains(t, text, tt.wantKind)
			assert.True(t, IsPlaceholder(text))
		})
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	t.Run("analyzer disabled returns error", func(t *testing.T) {
		e := NewTextExtractor(NewDisabledAnalyzer())
		_, err := e.Extract(context.Background(), []byte("not a pdf"), "application/pdf")
		assert.Error(t, err)
	})

	t.Run("analyzer takes over", func(t *testing.T) {
		analyzer := &stubAnalyzer{text: "ocr text"}
		e := NewTextExtractor(analyzer)
		text, err := e.Extract(context.Background(), []byte("not a pdf"), "application/pdf")
		assert.NoError(t, err)
		assert.Equal(t, "ocr text", text)
	})
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(placeholderFor("image/png")))
	assert.False(t, IsPlaceholder("real extracted content"))
	assert.False(t, IsPlaceholder(""))
}
