package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest carries the parsed multipart upload. Built by the
// controller, never bound from JSON.
type UploadDocumentRequest struct {
	Filename string
	FileType string
	FileSize int64
	Content  []byte
}

// ProcessDocumentMessage is the processing pipeline payload.
type ProcessDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

type DocumentResponse struct {
	Id           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	OriginalName string                 `json:"original_name"`
	FileType     string                 `json:"file_type"`
	FileSize     int64                  `json:"file_size"`
	Status       string                 `json:"status"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    *time.Time             `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int64              `json:"total"`
}

type DocumentContentResponse struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Content string    `json:"content"`
}

type RenameDocumentRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,max=255"`
}

type ReprocessDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type DocumentStatsResponse struct {
	TotalDocuments int64            `json:"total_documents"`
	TotalSizeBytes int64            `json:"total_size_bytes"`
	ByStatus       map[string]int64 `json:"by_status"`
}

// SimpleSearchResult is a keyword match over stored document text, used
// when no semantic index is involved.
type SimpleSearchResult struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Preview   string    `json:"preview"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type SimpleSearchResponse struct {
	Query   string               `json:"query"`
	Results []SimpleSearchResult `json:"results"`
	Total   int                  `json:"total"`
}
