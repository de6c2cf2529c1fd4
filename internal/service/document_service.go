package service

import (
	"context"
	"encoding/json"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/pkg/apperr"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/pkg/storage"
	"ai-foundry-be/internal/repository/specification"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/pkg/searchindex"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID, limit, offset int, status string) (*dto.ListDocumentsResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error
	Content(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentContentResponse, error)
	Reprocess(ctx context.Context, userId, id uuid.UUID) (*dto.ReprocessDocumentResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.DocumentStatsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	storage          storage.Storage
	index            searchindex.Index
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	fileStorage storage.Storage,
	index searchindex.Index,
	publisherService IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		storage:          fileStorage,
		index:            index,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	path, err := s.storage.Save(userId, req.Filename, req.Content)
	if err != nil {
		return nil, apperr.Persistence("failed to store uploaded file", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         req.Filename,
		OriginalName: req.Filename,
		FileType:     req.FileType,
		FileSize:     req.FileSize,
		StoragePath:  path,
		Status:       entity.DocumentStatusUploading,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, apperr.Persistence("failed to create document", err)
	}

	if err := s.enqueueProcessing(ctx, uow, doc); err != nil {
		// The row survives with status error so the user sees the outcome
		// and can reprocess.
		return toDocumentResponse(doc), nil
	}

	return toDocumentResponse(doc), nil
}

// enqueueProcessing flips the document to processing and publishes the
// pipeline message. A publish failure marks the document error.
func (s *documentService) enqueueProcessing(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) error {
	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusProcessing); err != nil {
		doc.Status = entity.DocumentStatusError
		_ = uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusError)
		return err
	}
	doc.Status = entity.DocumentStatusProcessing

	payload, err := json.Marshal(dto.ProcessDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("document", "failed to publish processing message", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		doc.Status = entity.DocumentStatusError
		_ = uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusError)
		return err
	}
	return nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, limit, offset int, status string) (*dto.ListDocumentsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedByUser{UserID: userId},
	}
	if status != "" {
		if !entity.DocumentStatus(status).Valid() {
			return nil, apperr.Validation("unknown document status")
		}
		specs = append(specs, specification.ByStatus{Status: status})
	}

	total, err := uow.DocumentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, apperr.Persistence("failed to count documents", err)
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperr.Persistence("failed to list documents", err)
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = *toDocumentResponse(doc)
	}

	return &dto.ListDocumentsResponse{
		Documents: responses,
		Total:     total,
	}, nil
}

func (s *documentService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.findOwned(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc.Name = req.Name
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, apperr.Persistence("failed to rename document", err)
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.index.Delete(ctx, doc.Id); err != nil {
		s.logger.Warn("document", "failed to delete index entry", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
	if err := s.storage.Delete(doc.StoragePath); err != nil {
		s.logger.Warn("document", "failed to delete stored file", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return apperr.Persistence("failed to delete document", err)
	}
	return nil
}

func (s *documentService) Content(ctx context.Context, userId, id uuid.UUID) (*dto.DocumentContentResponse, error) {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	var content string
	if doc.Content != nil {
		content = *doc.Content
	}
	return &dto.DocumentContentResponse{
		Id:      doc.Id,
		Name:    doc.Name,
		Status:  string(doc.Status),
		Content: content,
	}, nil
}

func (s *documentService) Reprocess(ctx context.Context, userId, id uuid.UUID) (*dto.ReprocessDocumentResponse, error) {
	doc, err := s.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	if !doc.Status.CanReprocess() {
		return nil, apperr.Conflict("document is still being processed")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.enqueueProcessing(ctx, uow, doc); err != nil {
		return nil, apperr.Persistence("failed to queue document for processing", err)
	}

	return &dto.ReprocessDocumentResponse{
		Id:     doc.Id,
		Status: string(doc.Status),
	}, nil
}

func (s *documentService) Stats(ctx context.Context, userId uuid.UUID) (*dto.DocumentStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.DocumentRepository().Count(ctx, specification.OwnedByUser{UserID: userId})
	if err != nil {
		return nil, apperr.Persistence("failed to count documents", err)
	}
	totalSize, err := uow.DocumentRepository().SumFileSize(ctx, userId)
	if err != nil {
		return nil, apperr.Persistence("failed to sum document sizes", err)
	}
	byStatus, err := uow.DocumentRepository().CountByStatus(ctx, userId)
	if err != nil {
		return nil, apperr.Persistence("failed to group documents by status", err)
	}

	return &dto.DocumentStatsResponse{
		TotalDocuments: total,
		TotalSizeBytes: totalSize,
		ByStatus:       byStatus,
	}, nil
}

// findOwned loads a document scoped to its owner. Not-found and not-owned
// collapse into the same outcome.
func (s *documentService) findOwned(ctx context.Context, userId, id uuid.UUID) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to load document", err)
	}
	if doc == nil {
		return nil, apperr.NotFound("document not found")
	}
	return doc, nil
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           doc.Id,
		Name:         doc.Name,
		OriginalName: doc.OriginalName,
		FileType:     doc.FileType,
		FileSize:     doc.FileSize,
		Status:       string(doc.Status),
		Metadata:     doc.Metadata,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
