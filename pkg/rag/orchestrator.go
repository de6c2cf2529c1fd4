package rag

import (
	"context"

	"ai-foundry-be/internal/entity"
	"ai-foundry-be/pkg/llm"
	"ai-foundry-be/pkg/searchindex"

	"github.com/google/uuid"
)

const historyWindow = 10

// Answer is a generated reply with its citations. Sources reflect what was
// retrieved even when the completion model was unavailable.
type Answer struct {
	Content string
	Sources []entity.Source
}

// Orchestrator runs the retrieve -> contextualize -> complete pipeline.
// It never returns an error: any backend failure degrades to a template
// response so the caller always has something to persist and show.
type Orchestrator struct {
	index          searchindex.Index
	provider       llm.LLMProvider
	retrievalLimit int
}

func NewOrchestrator(index searchindex.Index, provider llm.LLMProvider, retrievalLimit int) *Orchestrator {
	if retrievalLimit <= 0 {
		retrievalLimit = 5
	}
	return &Orchestrator{
		index:          index,
		provider:       provider,
		retrievalLimit: retrievalLimit,
	}
}

// Generate answers userMessage against the user's documents. history is the
// prior conversation, oldest first; documentIds optionally restricts
// retrieval to a subset the user selected.
func (o *Orchestrator) Generate(ctx context.Context, userId uuid.UUID, userMessage string, history []llm.Message, documentIds []uuid.UUID) Answer {
	results, err := o.index.Query(ctx, userMessage, userId, o.retrievalLimit, documentIds)
	if err != nil {
		// A broken index reads as an empty one; the context markers and
		// fallback templates take it from there.
		results = nil
	}

	contextBlock := BuildContext(results, len(documentIds))
	content := o.complete(ctx, userMessage, contextBlock, history, len(documentIds))

	return Answer{
		Content: content,
		Sources: ExtractSources(results),
	}
}

func (o *Orchestrator) complete(ctx context.Context, userMessage, contextBlock string, history []llm.Message, subsetSize int) string {
	if !o.provider.Enabled() {
		return fallbackResponse(userMessage, contextBlock)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: buildSystemPrompt(contextBlock, subsetSize),
	})

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	messages = append(messages, recent...)

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: userMessage,
	})

	response, err := o.provider.Chat(ctx, messages)
	if err != nil || response == "" {
		return fallbackResponse(userMessage, contextBlock)
	}
	return response
}
