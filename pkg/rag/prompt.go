package rag

import (
	"fmt"
	"strings"
)

// buildSystemPrompt assembles the model instructions. When the user chose a
// document subset the prompt forbids asking which document is meant.
func buildSystemPrompt(contextBlock string, subsetSize int) string {
	var subsetNote string
	if subsetSize > 0 {
		subsetNote = fmt.Sprintf("\nIMPORTANT: The user has specifically selected %d document(s) to search. You MUST answer based ONLY on information from these selected documents. Do NOT ask which document the user is referring to - they have already selected specific documents.\n", subsetSize)
	}

	var b strings.Builder
	b.WriteString("You are an AI assistant for an enterprise document management system.\n")
	b.WriteString("Use the following context from the user's documents to answer their question accurately and helpfully.\n")
	b.WriteString(subsetNote)
	b.WriteString("\nContext from documents:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("- Answer based ONLY on the provided context from the selected documents\n")
	b.WriteString("- If documents were selected by the user, you already know which documents to use - do NOT ask the user to specify which document\n")
	b.WriteString("- If the context indicates no relevant information was found in the selected documents, clearly state: \"I couldn't find information about your question in the selected document(s).\"\n")
	b.WriteString("- Be concise and professional\n")
	b.WriteString("- Always cite the specific document name when referencing information (the document name is provided in the context)\n")
	b.WriteString("- If the context shows document names, use those names in your response\n")
	b.WriteString("- Never ask \"which document are you referring to\" if documents have been selected\n")
	return b.String()
}
