package service

import (
	"context"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/pkg/apperr"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/repository/specification"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/pkg/rag"
	"ai-foundry-be/pkg/searchindex"
	"ai-foundry-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	simpleSearchScore   = 0.8
	simpleSearchPreview = 500
	searchSnippetLength = 200
)

type ISearchService interface {
	Semantic(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error)
	Simple(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.SimpleSearchResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	index      searchindex.Index
	logger     logger.ILogger
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, index searchindex.Index, log logger.ILogger) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		index:      index,
		logger:     log,
	}
}

func (s *searchService) Semantic(ctx context.Context, userId uuid.UUID, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error) {
	results, err := s.index.Query(ctx, req.Query, userId, req.Limit, req.DocumentIds)
	if err != nil {
		// An unavailable index reads as an empty one; the caller gets
		// zero results, never a backend error.
		s.logger.Warn("search", "semantic query failed", map[string]interface{}{
			"error": err.Error(),
		})
		results = nil
	}

	out := make([]dto.SemanticSearchResult, len(results))
	for i, result := range results {
		out[i] = dto.SemanticSearchResult{
			DocumentId:   result.DocumentId,
			DocumentName: result.DocumentName,
			Snippet:      utils.TruncateWithEllipsis(result.Content, searchSnippetLength),
			Score:        result.Score,
		}
		if len(result.Highlights) > 0 {
			out[i].Snippet = result.Highlights[0]
		}
		if page, ok := rag.PageFromMetadata(result.Metadata); ok {
			out[i].PageNumber = &page
		}
	}

	return &dto.SemanticSearchResponse{
		Query:   req.Query,
		Results: out,
		Total:   len(out),
	}, nil
}

// Simple is a keyword match over stored document rows; it works even when
// the search index and embedding backends are down.
func (s *searchService) Simple(ctx context.Context, userId uuid.UUID, query string, limit int) (*dto.SimpleSearchResponse, error) {
	if query == "" {
		return nil, apperr.Validation("query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.NameOrContentILike{Term: query},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to search documents", err)
	}

	results := make([]dto.SimpleSearchResult, len(docs))
	for i, doc := range docs {
		var preview string
		if doc.Content != nil {
			preview = utils.TruncateWithEllipsis(*doc.Content, simpleSearchPreview)
		}
		results[i] = dto.SimpleSearchResult{
			Id:        doc.Id,
			Name:      doc.Name,
			Preview:   preview,
			Score:     simpleSearchScore,
			CreatedAt: doc.CreatedAt,
		}
	}

	return &dto.SimpleSearchResponse{
		Query:   query,
		Results: results,
		Total:   len(results),
	}, nil
}
