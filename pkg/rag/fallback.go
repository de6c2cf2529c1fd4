package rag

import (
	"fmt"
	"strings"
)

const greetingResponse = "Hello! I'm your AI assistant. I can help you find information in your uploaded documents and answer questions based on them. Please upload some documents first, then ask me questions about their content."

// fallbackResponse produces a deterministic answer when no completion model
// is available or the model call failed. The user always gets a readable
// reply, never a backend error.
func fallbackResponse(userMessage, contextBlock string) string {
	if isGreeting(userMessage) {
		return greetingResponse
	}

	switch {
	case strings.Contains(contextBlock, subsetEmptyPrefix):
		return fmt.Sprintf("I searched through the selected document(s) but couldn't find information related to your question about '%s'. The selected documents may not contain the information you're looking for. You might want to try selecting different documents or ask a different question.", userMessage)
	case strings.Contains(contextBlock, libraryEmptyMarker):
		return fmt.Sprintf("I couldn't find relevant information in your documents about '%s'. Based on the available context, I can help you with questions about company policies, procedures, and other document content. Could you provide more specific details about what you're looking for, or try selecting different documents?", userMessage)
	default:
		return fmt.Sprintf("Based on the information in your selected documents, I found some context about '%s'. However, I may not have all the details. Please review the document sources provided below for more complete information.", userMessage)
	}
}

// isGreeting matches greeting words as whole tokens so that questions like
// "what is this?" are not mistaken for a greeting.
func isGreeting(message string) bool {
	for _, token := range strings.Fields(strings.ToLower(message)) {
		token = strings.Trim(token, ".,!?;:")
		switch token {
		case "hello", "hi", "hey":
			return true
		}
	}
	return false
}
