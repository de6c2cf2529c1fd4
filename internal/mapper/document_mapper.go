package mapper

import (
	"time"

	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if d.Metadata != nil {
		metadata = map[string]interface{}(d.Metadata)
	}

	return &entity.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		FileType:     d.FileType,
		FileSize:     d.FileSize,
		StoragePath:  d.StoragePath,
		Status:       entity.DocumentStatus(d.Status),
		Content:      d.Content,
		Metadata:     metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var metadata datatypes.JSONMap
	if d.Metadata != nil {
		metadata = datatypes.JSONMap(d.Metadata)
	}

	return &model.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		Name:         d.Name,
		OriginalName: d.OriginalName,
		FileType:     d.FileType,
		FileSize:     d.FileSize,
		StoragePath:  d.StoragePath,
		Status:       string(d.Status),
		Content:      d.Content,
		Metadata:     metadata,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
