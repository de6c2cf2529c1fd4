package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Source is a citation attached to an assistant message, pointing back to
// the document passage the answer was grounded on. Embedded in the owning
// message, never persisted separately.
type Source struct {
	DocumentId     uuid.UUID `json:"document_id"`
	DocumentName   string    `json:"document_name"`
	PageNumber     *int      `json:"page_number,omitempty"`
	RelevanceScore float64   `json:"relevance_score"`
	Snippet        string    `json:"snippet"`
}

// ChatMessage is immutable once created. Sources are present only on
// assistant messages produced via retrieval.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Sources       []Source
	CreatedAt     time.Time
}
