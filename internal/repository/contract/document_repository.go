package contract

import (
	"context"

	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	// UpdateStatus flips only the status column, leaving content and
	// metadata untouched. Used by the processing pipeline for error marks.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus) error
	// SetContentReady writes the extracted content and the ready status in
	// one id-scoped update. Returns false when no row matched, so a
	// document deleted mid-processing is never re-created.
	SetContentReady(ctx context.Context, id uuid.UUID, content string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumFileSize(ctx context.Context, userId uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error)
}
