package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"hello", true},
		{"Hi there!", true},
		{"Hey, can you help?", true},
		{"HELLO!!!", true},
		{"what is this?", false},
		{"the hills are high", false},
		{"history of rome", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, isGreeting(tt.message))
		})
	}
}

func TestFallbackResponse(t *testing.T) {
	t.Run("greeting wins over context", func(t *testing.T) {
		got := fallbackResponse("hello", BuildContext(nil, 0))
		assert.Equal(t, greetingResponse, got)
	})

	t.Run("empty subset context", func(t *testing.T) {
		got := fallbackResponse("vacation days", BuildContext(nil, 2))
		assert.Contains(t, got, "I searched through the selected document(s)")
		assert.Contains(t, got, "'vacation days'")
	})

	t.Run("empty library context", func(t *testing.T) {
		got := fallbackResponse("vacation days", BuildContext(nil, 0))
		assert.Contains(t, got, "I couldn't find relevant information in your documents")
		assert.Contains(t, got, "'vacation days'")
	})

	t.Run("context present", func(t *testing.T) {
		got := fallbackResponse("vacation days", "Document: handbook.pdf\nContent: ...")
		assert.Contains(t, got, "Based on the information in your selected documents")
		assert.Contains(t, got, "'vacation days'")
	})
}
