package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-foundry-be/pkg/llm"
	"ai-foundry-be/pkg/searchindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeIndex struct {
	results []searchindex.Result
	err     error

	lastQuery  string
	lastUserId uuid.UUID
	lastLimit  int
	lastDocIds []uuid.UUID
}

func (f *fakeIndex) Index(ctx context.Context, entry searchindex.Entry) bool { return true }

func (f *fakeIndex) Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]searchindex.Result, error) {
	f.lastQuery = text
	f.lastUserId = userId
	f.lastLimit = limit
	f.lastDocIds = docIds
	return f.results, f.err
}

func (f *fakeIndex) Delete(ctx context.Context, documentId uuid.UUID) error { return nil }
func (f *fakeIndex) Enabled() bool                                          { return true }

type fakeLLM struct {
	response string
	err      error
	enabled  bool

	lastMessages []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastMessages = history
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Enabled() bool { return f.enabled }

func sampleResults() []searchindex.Result {
	return []searchindex.Result{
		{
			DocumentId:   uuid.New(),
			DocumentName: "handbook.pdf",
			Content:      "Employees receive 25 vacation days per year.",
			Score:        0.88,
			Metadata:     map[string]interface{}{"page": float64(3)},
		},
	}
}

func TestGenerateWithModel(t *testing.T) {
	index := &fakeIndex{results: sampleResults()}
	provider := &fakeLLM{response: "You get 25 vacation days.", enabled: true}
	orch := NewOrchestrator(index, provider, 5)

	userId := uuid.New()
	answer := orch.Generate(context.Background(), userId, "how many vacation days?", nil, nil)

	assert.Equal(t, "You get 25 vacation days.", answer.Content)
	assert.Len(t, answer.Sources, 1)
	assert.Equal(t, "handbook.pdf", answer.Sources[0].DocumentName)
	assert.Equal(t, 0.88, answer.Sources[0].RelevanceScore)

	assert.Equal(t, userId, index.lastUserId)
	assert.Equal(t, 5, index.lastLimit)

	// system prompt first, user message last
	assert.Equal(t, "system", provider.lastMessages[0].Role)
	assert.Contains(t, provider.lastMessages[0].Content, "handbook.pdf")
	last := provider.lastMessages[len(provider.lastMessages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "how many vacation days?", last.Content)
}

func TestGenerateDisabledProviderFallsBack(t *testing.T) {
	index := &fakeIndex{}
	provider := &fakeLLM{enabled: false}
	orch := NewOrchestrator(index, provider, 5)

	answer := orch.Generate(context.Background(), uuid.New(), "vacation days", nil, nil)

	assert.Contains(t, answer.Content, "I couldn't find relevant information in your documents")
	assert.Empty(t, answer.Sources)
	assert.Nil(t, provider.lastMessages, "disabled provider is never called")
}

func TestGenerateModelErrorFallsBack(t *testing.T) {
	index := &fakeIndex{results: sampleResults()}
	provider := &fakeLLM{err: errors.New("connection refused"), enabled: true}
	orch := NewOrchestrator(index, provider, 5)

	answer := orch.Generate(context.Background(), uuid.New(), "vacation days", nil, nil)

	assert.Contains(t, answer.Content, "Based on the information in your selected documents")
	assert.Len(t, answer.Sources, 1, "sources survive a failed completion")
}

func TestGenerateEmptyModelResponseFallsBack(t *testing.T) {
	index := &fakeIndex{results: sampleResults()}
	provider := &fakeLLM{response: "", enabled: true}
	orch := NewOrchestrator(index, provider, 5)

	answer := orch.Generate(context.Background(), uuid.New(), "vacation days", nil, nil)

	assert.Contains(t, answer.Content, "Based on the information in your selected documents")
}

func TestGenerateQueryErrorReadsAsEmpty(t *testing.T) {
	index := &fakeIndex{err: errors.New("db down")}
	provider := &fakeLLM{enabled: false}
	orch := NewOrchestrator(index, provider, 5)

	answer := orch.Generate(context.Background(), uuid.New(), "vacation days", nil, nil)

	assert.Contains(t, answer.Content, "I couldn't find relevant information in your documents")
	assert.Empty(t, answer.Sources)
}

func TestGenerateSubsetSelection(t *testing.T) {
	index := &fakeIndex{}
	provider := &fakeLLM{enabled: false}
	orch := NewOrchestrator(index, provider, 5)

	docIds := []uuid.UUID{uuid.New(), uuid.New()}
	answer := orch.Generate(context.Background(), uuid.New(), "vacation days", nil, docIds)

	assert.Equal(t, docIds, index.lastDocIds)
	assert.Contains(t, answer.Content, "I searched through the selected document(s)")
}

func TestGenerateSubsetPromptForbidsWhichDocument(t *testing.T) {
	index := &fakeIndex{results: sampleResults()}
	provider := &fakeLLM{response: "answer", enabled: true}
	orch := NewOrchestrator(index, provider, 5)

	orch.Generate(context.Background(), uuid.New(), "summarize", nil, []uuid.UUID{uuid.New()})

	system := provider.lastMessages[0].Content
	assert.Contains(t, system, "specifically selected 1 document(s)")
	assert.Contains(t, system, "Do NOT ask which document")
}

func TestGenerateHistoryWindow(t *testing.T) {
	index := &fakeIndex{results: sampleResults()}
	provider := &fakeLLM{response: "answer", enabled: true}
	orch := NewOrchestrator(index, provider, 5)

	history := make([]llm.Message, 0, 14)
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: strings.Repeat("m", i+1)})
	}

	orch.Generate(context.Background(), uuid.New(), "latest question", history, nil)

	// system + 10 most recent + new user message
	assert.Len(t, provider.lastMessages, 12)
	assert.Equal(t, history[4].Content, provider.lastMessages[1].Content, "oldest retained turn is history[4]")
}

func TestNewOrchestratorDefaultLimit(t *testing.T) {
	index := &fakeIndex{}
	orch := NewOrchestrator(index, &fakeLLM{}, 0)

	orch.Generate(context.Background(), uuid.New(), "q", nil, nil)
	assert.Equal(t, 5, index.lastLimit)
}
