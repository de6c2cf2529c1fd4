package mapper

import (
	"testing"

	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatMessageSourcesRoundTrip(t *testing.T) {
	m := NewChatMapper()
	page := 7

	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		Role:          "assistant",
		Content:       "The policy allows 25 days.",
		Sources: []entity.Source{
			{
				DocumentId:     uuid.New(),
				DocumentName:   "handbook.pdf",
				PageNumber:     &page,
				RelevanceScore: 0.9,
				Snippet:        "Employees receive 25 vacation days...",
			},
		},
	}

	mdl, err := m.ChatMessageToModel(msg)
	assert.NoError(t, err)
	assert.NotEmpty(t, mdl.Sources)

	back := m.ChatMessageToEntity(mdl)
	assert.Equal(t, msg.Sources, back.Sources)
	assert.Equal(t, msg.Content, back.Content)
}

func TestChatMessageToEntityMalformedSources(t *testing.T) {
	m := NewChatMapper()

	back := m.ChatMessageToEntity(&model.ChatMessage{
		Id:      uuid.New(),
		Role:    "assistant",
		Content: "hello",
		Sources: []byte("{not json"),
	})

	assert.NotNil(t, back)
	assert.Empty(t, back.Sources, "malformed citations drop silently")
	assert.Equal(t, "hello", back.Content)
}

func TestChatMessageNilSafety(t *testing.T) {
	m := NewChatMapper()

	mdl, err := m.ChatMessageToModel(nil)
	assert.NoError(t, err)
	assert.Nil(t, mdl)
	assert.Nil(t, m.ChatMessageToEntity(nil))
	assert.Nil(t, m.ChatSessionToEntity(nil))
	assert.Nil(t, m.ChatSessionToModel(nil))
}
