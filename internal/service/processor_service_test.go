package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/repository/contract"
	"ai-foundry-be/internal/repository/specification"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/pkg/extractor"
	"ai-foundry-be/pkg/searchindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, msg string, details map[string]interface{}) {}
func (nopLogger) Info(module, msg string, details map[string]interface{})  {}
func (nopLogger) Warn(module, msg string, details map[string]interface{})  {}
func (nopLogger) Error(module, msg string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                              { return nil }

var _ logger.ILogger = nopLogger{}

// fakeDocumentRepo holds at most one document, enough for a pipeline run.
type fakeDocumentRepo struct {
	doc     *entity.Document
	deleted bool // row gone between load and the ready update

	readyContent *string
	statuses     []entity.DocumentStatus
	created      int
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.created++
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error { return nil }

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus) error {
	r.statuses = append(r.statuses, status)
	if r.doc != nil {
		r.doc.Status = status
	}
	return nil
}

func (r *fakeDocumentRepo) SetContentReady(ctx context.Context, id uuid.UUID, content string) (bool, error) {
	if r.deleted || r.doc == nil || r.doc.Id != id {
		return false, nil
	}
	r.readyContent = &content
	r.doc.Content = &content
	r.doc.Status = entity.DocumentStatusReady
	return true, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	if r.doc == nil {
		return nil, nil
	}
	c := *r.doc
	return &c, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeDocumentRepo) SumFileSize(ctx context.Context, userId uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeDocumentRepo) CountByStatus(ctx context.Context, userId uuid.UUID) (map[string]int64, error) {
	return nil, nil
}

var _ contract.DocumentRepository = (*fakeDocumentRepo)(nil)

type fakeUnitOfWork struct {
	docs contract.DocumentRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository               { return nil }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository      { return u.docs }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return nil }

type fakeUowFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeStorage struct {
	files map[string][]byte
	err   error
}

func (s *fakeStorage) Save(userId uuid.UUID, filename string, content []byte) (string, error) {
	return "", nil
}

func (s *fakeStorage) Read(path string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.files[path], nil
}

func (s *fakeStorage) Delete(path string) error { return nil }

// recordingIndex captures upserts keyed by document id, like the real one.
type recordingIndex struct {
	entries map[uuid.UUID]searchindex.Entry
	fail    bool
}

func newRecordingIndex() *recordingIndex {
	return &recordingIndex{entries: make(map[uuid.UUID]searchindex.Entry)}
}

func (i *recordingIndex) Index(ctx context.Context, entry searchindex.Entry) bool {
	if i.fail {
		return false
	}
	i.entries[entry.DocumentId] = entry
	return true
}

func (i *recordingIndex) Query(ctx context.Context, text string, userId uuid.UUID, limit int, docIds []uuid.UUID) ([]searchindex.Result, error) {
	return []searchindex.Result{}, nil
}

func (i *recordingIndex) Delete(ctx context.Context, documentId uuid.UUID) error { return nil }
func (i *recordingIndex) Enabled() bool                                          { return true }

type processorFixture struct {
	svc   *processorService
	repo  *fakeDocumentRepo
	store *fakeStorage
	index *recordingIndex
}

func newProcessorFixture(doc *entity.Document) *processorFixture {
	repo := &fakeDocumentRepo{doc: doc}
	store := &fakeStorage{files: map[string][]byte{}}
	index := newRecordingIndex()
	return &processorFixture{
		svc: &processorService{
			topicName:  "PROCESS_DOCUMENT",
			uowFactory: &fakeUowFactory{uow: &fakeUnitOfWork{docs: repo}},
			extractor:  extractor.NewTextExtractor(extractor.NewDisabledAnalyzer()),
			index:      index,
			storage:    store,
			logger:     nopLogger{},
		},
		repo:  repo,
		store: store,
		index: index,
	}
}

func processingDoc() *entity.Document {
	return &entity.Document{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		Name:        "notes.txt",
		FileType:    "text/plain",
		StoragePath: "uploads/u/notes.txt",
		Status:      entity.DocumentStatusProcessing,
	}
}

func processMsg(t *testing.T, documentId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.ProcessDocumentMessage{DocumentId: documentId})
	assert.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func isAcked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func isNacked(msg *message.Message) bool {
	select {
	case <-msg.Nacked():
		return true
	default:
		return false
	}
}

func TestProcessMessagePlainTextReady(t *testing.T) {
	doc := processingDoc()
	f := newProcessorFixture(doc)
	f.store.files[doc.StoragePath] = []byte("hello world")

	msg := processMsg(t, doc.Id)
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg))
	if assert.NotNil(t, f.repo.readyContent) {
		assert.Equal(t, "hello world", *f.repo.readyContent)
	}
	assert.Equal(t, entity.DocumentStatusReady, f.repo.doc.Status)
	assert.Empty(t, f.repo.statuses, "no error mark on the happy path")

	assert.Len(t, f.index.entries, 1)
	entry := f.index.entries[doc.Id]
	assert.Equal(t, doc.UserId, entry.UserId)
	assert.Equal(t, "hello world", entry.Content)
}

func TestProcessMessageStorageReadFailure(t *testing.T) {
	doc := processingDoc()
	f := newProcessorFixture(doc)
	f.store.err = errors.New("disk gone")

	msg := processMsg(t, doc.Id)
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg), "permanent failures are not retried")
	assert.Equal(t, []entity.DocumentStatus{entity.DocumentStatusError}, f.repo.statuses)
	assert.Empty(t, f.index.entries)
}

func TestProcessMessageExtractionFailure(t *testing.T) {
	doc := processingDoc()
	doc.FileType = "application/pdf"
	f := newProcessorFixture(doc)
	f.store.files[doc.StoragePath] = []byte("not a pdf")

	msg := processMsg(t, doc.Id)
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg))
	assert.Equal(t, []entity.DocumentStatus{entity.DocumentStatusError}, f.repo.statuses)
	assert.Nil(t, f.repo.readyContent)
	assert.Empty(t, f.index.entries)
}

func TestProcessMessageIndexFailureLeavesReady(t *testing.T) {
	doc := processingDoc()
	f := newProcessorFixture(doc)
	f.store.files[doc.StoragePath] = []byte("hello world")
	f.index.fail = true

	msg := processMsg(t, doc.Id)
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg))
	assert.Equal(t, entity.DocumentStatusReady, f.repo.doc.Status)
	assert.Empty(t, f.repo.statuses, "index failure never marks the document error")
	assert.Empty(t, f.index.entries)
}

func TestProcessMessageDeletedMidProcessing(t *testing.T) {
	doc := processingDoc()
	f := newProcessorFixture(doc)
	f.store.files[doc.StoragePath] = []byte("hello world")
	f.repo.deleted = true

	msg := processMsg(t, doc.Id)
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg))
	assert.Zero(t, f.repo.created, "a vanished row is never re-created")
	assert.Nil(t, f.repo.readyContent)
	assert.Empty(t, f.index.entries, "gone documents are not indexed")
}

func TestProcessMessageReprocessUpserts(t *testing.T) {
	doc := processingDoc()
	f := newProcessorFixture(doc)
	f.store.files[doc.StoragePath] = []byte("first pass")

	f.svc.processMessage(context.Background(), processMsg(t, doc.Id))
	assert.Len(t, f.index.entries, 1)

	f.store.files[doc.StoragePath] = []byte("second pass")
	f.svc.processMessage(context.Background(), processMsg(t, doc.Id))

	assert.Len(t, f.index.entries, 1, "one entry per document")
	assert.Equal(t, "second pass", f.index.entries[doc.Id].Content)
	assert.Equal(t, "second pass", *f.repo.readyContent)
}

func TestProcessMessageMalformedPayload(t *testing.T) {
	f := newProcessorFixture(processingDoc())

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg), "unparseable payloads will never parse, do not retry")
	assert.False(t, isNacked(msg))
}

func TestProcessMessageDocumentGone(t *testing.T) {
	f := newProcessorFixture(nil)

	msg := processMsg(t, uuid.New())
	f.svc.processMessage(context.Background(), msg)

	assert.True(t, isAcked(msg))
	assert.Empty(t, f.index.entries)
}
