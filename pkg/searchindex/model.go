package searchindex

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// SearchIndexEntryModel is the backing table for the pgvector index.
// Exactly one row per indexed document, keyed by document id.
type SearchIndexEntryModel struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	DocumentName  string    `gorm:"type:varchar(255);not null"`
	Content       string    `gorm:"type:text;not null"`
	Metadata      datatypes.JSONMap
	ContentVector *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt     time.Time        `gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime"`
}

func (SearchIndexEntryModel) TableName() string {
	return "search_index_entries"
}
