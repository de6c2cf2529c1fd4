package dto

import "github.com/google/uuid"

type SemanticSearchRequest struct {
	Query       string      `json:"query" validate:"required"`
	Limit       int         `json:"limit" validate:"omitempty,min=1,max=50"`
	DocumentIds []uuid.UUID `json:"document_ids,omitempty"`
}

type SemanticSearchResult struct {
	DocumentId   uuid.UUID `json:"document_id"`
	DocumentName string    `json:"document_name"`
	Snippet      string    `json:"snippet"`
	Score        float64   `json:"score"`
	PageNumber   *int      `json:"page_number,omitempty"`
}

type SemanticSearchResponse struct {
	Query   string                 `json:"query"`
	Results []SemanticSearchResult `json:"results"`
	Total   int                    `json:"total"`
}
