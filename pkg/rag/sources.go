package rag

import (
	"ai-foundry-be/internal/entity"
	"ai-foundry-be/pkg/searchindex"
	"ai-foundry-be/pkg/utils"
)

const snippetLength = 200

// ExtractSources turns retrieved passages into message citations. Scores
// are carried verbatim from the index; snippets are the head of the passage.
func ExtractSources(results []searchindex.Result) []entity.Source {
	sources := make([]entity.Source, 0, len(results))
	for _, result := range results {
		source := entity.Source{
			DocumentId:     result.DocumentId,
			DocumentName:   result.DocumentName,
			RelevanceScore: result.Score,
			Snippet:        utils.TruncateWithEllipsis(result.Content, snippetLength),
		}
		if page, ok := PageFromMetadata(result.Metadata); ok {
			source.PageNumber = &page
		}
		sources = append(sources, source)
	}
	return sources
}
