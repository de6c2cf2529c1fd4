package service

import (
	"context"
	"errors"
	"testing"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/pkg/searchindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type erringIndex struct {
	results []searchindex.Result
	err     error
}

func (i *erringIndex) Index(ctx context.Context, entry searchindex.Entry) bool { return true }

func (i *erringIndex) Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]searchindex.Result, error) {
	return i.results, i.err
}

func (i *erringIndex) Delete(ctx context.Context, documentId uuid.UUID) error { return nil }
func (i *erringIndex) Enabled() bool                                          { return true }

func TestSemanticSearchIndexFailureDegradesToEmpty(t *testing.T) {
	svc := NewSearchService(nil, &erringIndex{err: errors.New("backend down")}, nopLogger{})

	res, err := svc.Semantic(context.Background(), uuid.New(), &dto.SemanticSearchRequest{
		Query: "vacation policy",
		Limit: 5,
	})

	assert.NoError(t, err, "an unavailable index is not an error to the caller")
	if assert.NotNil(t, res) {
		assert.Empty(t, res.Results)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, "vacation policy", res.Query)
	}
}

func TestSemanticSearchMapsResults(t *testing.T) {
	docId := uuid.New()
	index := &erringIndex{
		results: []searchindex.Result{
			{
				DocumentId:   docId,
				DocumentName: "handbook.pdf",
				Content:      "Employees receive 25 vacation days per year.",
				Score:        0.88,
				Highlights:   []string{"25 vacation days"},
				Metadata:     map[string]interface{}{"page": float64(3)},
			},
		},
	}
	svc := NewSearchService(nil, index, nopLogger{})

	res, err := svc.Semantic(context.Background(), uuid.New(), &dto.SemanticSearchRequest{
		Query: "vacation",
		Limit: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, docId, res.Results[0].DocumentId)
	assert.Equal(t, "25 vacation days", res.Results[0].Snippet, "first highlight wins over the truncated content")
	assert.Equal(t, 0.88, res.Results[0].Score)
	if assert.NotNil(t, res.Results[0].PageNumber) {
		assert.Equal(t, 3, *res.Results[0].PageNumber)
	}
}
