package service

import (
	"context"
	"encoding/json"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/pkg/storage"
	"ai-foundry-be/internal/repository/specification"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/pkg/events"
	"ai-foundry-be/pkg/extractor"
	pktNats "ai-foundry-be/pkg/nats"
	"ai-foundry-be/pkg/searchindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IProcessorService interface {
	Consume(ctx context.Context) error
}

// processorService is the pipeline consumer. It extracts document text,
// persists content + ready status transactionally, then upserts the search
// index entry. Failures mark the document `error` and never reach the
// uploader; an index failure after the ready commit leaves the document
// readable, and a reprocess heals the missing entry.
type processorService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	extractor      *extractor.TextExtractor
	index          searchindex.Index
	storage        storage.Storage
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewProcessorService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	textExtractor *extractor.TextExtractor,
	index searchindex.Index,
	fileStorage storage.Storage,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProcessorService {
	return &processorService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		extractor:      textExtractor,
		index:          index,
		storage:        fileStorage,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (ps *processorService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *processorService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.logger.Error("processor", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads will never parse, do not retry
		return
	}

	uow := ps.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		ps.logger.Error("processor", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted between publish and consume.
		msg.Ack()
		return
	}

	content, err := ps.storage.Read(doc.StoragePath)
	if err != nil {
		ps.markError(ctx, uow, doc, "failed to read stored file", err)
		msg.Ack()
		return
	}

	text, err := ps.extractor.Extract(ctx, content, doc.FileType)
	if err != nil {
		ps.markError(ctx, uow, doc, "text extraction failed", err)
		msg.Ack()
		return
	}

	// Content and ready status land in one id-scoped update so a crash
	// after this point still leaves a readable, reprocessable document.
	updated, err := uow.DocumentRepository().SetContentReady(ctx, doc.Id, text)
	if err != nil {
		ps.logger.Error("processor", "failed to persist extracted content", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if !updated {
		// Deleted while processing; do not re-create the row or index it.
		msg.Ack()
		return
	}

	if ps.index.Enabled() {
		indexed := ps.index.Index(ctx, searchindex.Entry{
			DocumentId:   doc.Id,
			UserId:       doc.UserId,
			Title:        doc.Name,
			DocumentName: doc.Name,
			Content:      text,
			Metadata:     doc.Metadata,
		})
		if !indexed {
			// Document stays ready; a reprocess re-creates the entry.
			ps.logger.Warn("processor", "search index upsert failed", map[string]interface{}{
				"document_id": doc.Id.String(),
			})
		}
	}

	ps.publishEvent(ctx, events.TypeDocumentReady, doc.Id, doc.UserId)
	ps.logger.Info("processor", "document processed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chars":       len(text),
	})
	msg.Ack()
}

func (ps *processorService) markError(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, reason string, cause error) {
	ps.logger.Error("processor", reason, map[string]interface{}{
		"document_id": doc.Id.String(),
		"error":       cause.Error(),
	})
	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusError); err != nil {
		ps.logger.Error("processor", "failed to mark document error", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
	ps.publishEvent(ctx, events.TypeDocumentError, doc.Id, doc.UserId)
}

func (ps *processorService) publishEvent(ctx context.Context, eventType string, documentId, userId uuid.UUID) {
	if ps.eventPublisher == nil {
		return
	}
	evt := events.New(eventType, map[string]interface{}{
		"document_id": documentId.String(),
		"user_id":     userId.String(),
	})
	if err := ps.eventPublisher.Publish(ctx, evt); err != nil {
		ps.logger.Warn("processor", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
