package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Name         string    `gorm:"type:varchar(255);not null"`
	OriginalName string    `gorm:"type:varchar(255);not null"`
	FileType     string    `gorm:"type:varchar(100);not null"`
	FileSize     int64     `gorm:"not null"`
	StoragePath  string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:varchar(50);not null;default:'uploading';index"`
	Content      *string   `gorm:"type:text"`
	Metadata     datatypes.JSONMap
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
