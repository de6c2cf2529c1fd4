package searchindex

import (
	"context"

	"github.com/google/uuid"
)

// Entry is one indexable unit: the full extracted text of a document plus
// the fields needed to attribute query hits back to it.
type Entry struct {
	DocumentId   uuid.UUID
	UserId       uuid.UUID
	Title        string
	DocumentName string
	Content      string
	Metadata     map[string]interface{}
}

// Result is a scored query hit.
type Result struct {
	DocumentId   uuid.UUID
	UserId       uuid.UUID
	Title        string
	DocumentName string
	Content      string
	Score        float64
	Highlights   []string
	Metadata     map[string]interface{}
}

// Index is the search backend. Implementations filter by owner server-side;
// callers never post-filter for ownership.
type Index interface {
	// Index upserts the entry, returning whether it was actually stored.
	Index(ctx context.Context, entry Entry) bool

	// Query returns the top matches for text, scoped to the user and,
	// when docIds is non-empty, to that document subset.
	Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]Result, error)

	// Delete removes a document's entry. Missing entries are not an error.
	Delete(ctx context.Context, documentId uuid.UUID) error

	// Enabled reports whether a real backend sits behind this index.
	Enabled() bool
}

// Disabled is the null index used when no search backend is configured.
// Queries come back empty so retrieval degrades to the no-results path.
type Disabled struct{}

func NewDisabled() Index {
	return &Disabled{}
}

func (d *Disabled) Index(ctx context.Context, entry Entry) bool {
	return false
}

func (d *Disabled) Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]Result, error) {
	return []Result{}, nil
}

func (d *Disabled) Delete(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (d *Disabled) Enabled() bool {
	return false
}
