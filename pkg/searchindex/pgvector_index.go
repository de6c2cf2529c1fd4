package searchindex

import (
	"context"
	"time"

	"ai-foundry-be/pkg/embedding"
	"ai-foundry-be/pkg/utils"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// Embedding backends reject very long inputs; index the head of the
	// document only.
	maxEmbeddingInput = 8000

	defaultQueryLimit = 5

	// Score assigned to keyword matches when no query vector is available.
	keywordScore = 0.5
)

// PgVectorIndex stores one entry per document in Postgres and ranks queries
// by cosine similarity when an embedding provider is available, falling back
// to ILIKE keyword matching otherwise.
type PgVectorIndex struct {
	db       *gorm.DB
	embedder embedding.EmbeddingProvider

	// Query embeddings are cached so repeated questions in a chat session
	// do not re-hit the embedding backend.
	queryCache *cache.Cache
}

func NewPgVectorIndex(db *gorm.DB, embedder embedding.EmbeddingProvider) Index {
	return &PgVectorIndex{
		db:         db,
		embedder:   embedder,
		queryCache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (i *PgVectorIndex) Enabled() bool {
	return true
}

func (i *PgVectorIndex) Index(ctx context.Context, entry Entry) bool {
	m := &SearchIndexEntryModel{
		DocumentId:   entry.DocumentId,
		UserId:       entry.UserId,
		Title:        entry.Title,
		DocumentName: entry.DocumentName,
		Content:      entry.Content,
	}
	if entry.Metadata != nil {
		m.Metadata = datatypes.JSONMap(entry.Metadata)
	}

	if vec, err := i.embedText(ctx, entry.Content); err == nil && vec != nil {
		v := pgvector.NewVector(vec)
		m.ContentVector = &v
	}
	// An entry without a vector still serves keyword queries.

	err := i.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "title", "document_name", "content", "metadata", "content_vector", "updated_at",
		}),
	}).Create(m).Error

	return err == nil
}

func (i *PgVectorIndex) Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]Result, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	vec, err := i.queryEmbedding(ctx, text)
	if err != nil || vec == nil {
		return i.keywordQuery(ctx, text, userId, limit, docIds)
	}
	return i.vectorQuery(ctx, text, vec, userId, limit, docIds)
}

func (i *PgVectorIndex) Delete(ctx context.Context, documentId uuid.UUID) error {
	return i.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Delete(&SearchIndexEntryModel{}).Error
}

func (i *PgVectorIndex) embedText(ctx context.Context, text string) ([]float32, error) {
	if !i.embedder.Enabled() {
		return nil, nil
	}
	return i.embedder.Generate(ctx, utils.Truncate(text, maxEmbeddingInput))
}

func (i *PgVectorIndex) queryEmbedding(ctx context.Context, text string) ([]float32, error) {
	if !i.embedder.Enabled() {
		return nil, nil
	}
	if cached, found := i.queryCache.Get(text); found {
		return cached.([]float32), nil
	}
	vec, err := i.embedder.Generate(ctx, utils.Truncate(text, maxEmbeddingInput))
	if err != nil {
		return nil, err
	}
	i.queryCache.Set(text, vec, cache.DefaultExpiration)
	return vec, nil
}

func (i *PgVectorIndex) vectorQuery(ctx context.Context, text string, vec []float32, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]Result, error) {
	type row struct {
		SearchIndexEntryModel
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vec)

	// Cosine distance in pgvector is 1 - cosine_similarity.
	query := i.db.WithContext(ctx).
		Table("search_index_entries").
		Select("search_index_entries.*, 1 - (content_vector <=> ?) AS similarity", queryVector).
		Where("user_id = ?", userId).
		Where("content_vector IS NOT NULL")

	if len(docIds) > 0 {
		query = query.Where("document_id IN ?", docIds)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(rows))
	for idx, r := range rows {
		results[idx] = i.toResult(&r.SearchIndexEntryModel, clampScore(r.Similarity), text)
	}
	return results, nil
}

func (i *PgVectorIndex) keywordQuery(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]Result, error) {
	pattern := "%" + text + "%"

	query := i.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("content ILIKE ? OR title ILIKE ? OR document_name ILIKE ?", pattern, pattern, pattern)

	if len(docIds) > 0 {
		query = query.Where("document_id IN ?", docIds)
	}

	var models []*SearchIndexEntryModel
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	results := make([]Result, len(models))
	for idx, m := range models {
		results[idx] = i.toResult(m, keywordScore, text)
	}
	return results, nil
}

func (i *PgVectorIndex) toResult(m *SearchIndexEntryModel, score float64, queryText string) Result {
	var metadata map[string]interface{}
	if m.Metadata != nil {
		metadata = map[string]interface{}(m.Metadata)
	}
	return Result{
		DocumentId:   m.DocumentId,
		UserId:       m.UserId,
		Title:        m.Title,
		DocumentName: m.DocumentName,
		Content:      m.Content,
		Score:        score,
		Highlights:   buildHighlights(m.Content, queryText),
		Metadata:     metadata,
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
