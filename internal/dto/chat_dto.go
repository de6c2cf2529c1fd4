package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type ChatSessionResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	MessageCount int64      `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type SourceDTO struct {
	DocumentId     uuid.UUID `json:"document_id"`
	DocumentName   string    `json:"document_name"`
	PageNumber     *int      `json:"page_number,omitempty"`
	RelevanceScore float64   `json:"relevance_score"`
	Snippet        string    `json:"snippet"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID   `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Sources   []SourceDTO `json:"sources,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ChatSessionDetailResponse struct {
	ChatSessionResponse
	Messages []ChatMessageResponse `json:"messages"`
}

type RenameSessionRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required,max=255"`
}

type SendMessageRequest struct {
	SessionId   uuid.UUID   `json:"session_id,omitempty"` // zero value: create a new session
	Message     string      `json:"message" validate:"required"`
	DocumentIds []uuid.UUID `json:"document_ids,omitempty"`
}

type SendMessageResponse struct {
	SessionId        uuid.UUID            `json:"session_id"`
	SessionTitle     string               `json:"session_title"`
	UserMessage      *ChatMessageResponse `json:"user_message"`
	AssistantMessage *ChatMessageResponse `json:"assistant_message"`
}

type ChatStatsResponse struct {
	TotalSessions int64 `json:"total_sessions"`
	TotalMessages int64 `json:"total_messages"`
}
