package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the processing state of a document. Transitions are
// monotonic (uploading -> processing -> ready|error); only a reprocess may
// re-enter processing from a terminal state.
type DocumentStatus string

const (
	DocumentStatusUploading  DocumentStatus = "uploading"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusReady      DocumentStatus = "ready"
	DocumentStatusError      DocumentStatus = "error"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusUploading, DocumentStatusProcessing, DocumentStatusReady, DocumentStatusError:
		return true
	}
	return false
}

// CanReprocess reports whether a document in this state may re-enter the
// processing pipeline.
func (s DocumentStatus) CanReprocess() bool {
	return s == DocumentStatusReady || s == DocumentStatusError
}

type Document struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	OriginalName string
	FileType     string
	FileSize     int64
	StoragePath  string
	Status       DocumentStatus
	Content      *string // extracted text, nil until ready
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
