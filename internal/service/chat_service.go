package service

import (
	"context"
	"strings"

	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/pkg/apperr"
	"ai-foundry-be/internal/pkg/logger"
	"ai-foundry-be/internal/repository/specification"
	"ai-foundry-be/internal/repository/unitofwork"
	"ai-foundry-be/pkg/events"
	"ai-foundry-be/pkg/llm"
	pktNats "ai-foundry-be/pkg/nats"
	"ai-foundry-be/pkg/rag"
	"ai-foundry-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New Chat"
	sessionTitleLength  = 50
	historyLoadLimit    = 20
)

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Regenerate(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SendMessageResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error)
	ShowSession(ctx context.Context, userId, id uuid.UUID) (*dto.ChatSessionDetailResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, userId, id uuid.UUID) error
	ListMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.ChatMessageResponse, error)
	ClearSession(ctx context.Context, userId, sessionId uuid.UUID) error
	Stats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	orchestrator   *rag.Orchestrator
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *rag.Orchestrator,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		orchestrator:   orchestrator,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, err := s.resolveSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The user's message is persisted before anything can fail; a reply
	// may degrade but the question never disappears.
	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          entity.ChatMessageRoleUser,
		Content:       req.Message,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, apperr.Persistence("failed to process chat message", err)
	}

	history, err := s.loadHistory(ctx, session.Id, userMessage.Id)
	if err != nil {
		return nil, apperr.Persistence("failed to load chat history", err)
	}

	answer := s.orchestrator.Generate(ctx, userId, req.Message, toLLMHistory(history), req.DocumentIds)

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          entity.ChatMessageRoleAssistant,
		Content:       answer.Content,
		Sources:       answer.Sources,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, apperr.Persistence("failed to process chat message", err)
	}

	if err := s.maybeDeriveTitle(ctx, uow, session, req.Message); err != nil {
		s.logger.Warn("chat", "failed to update session title", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	return &dto.SendMessageResponse{
		SessionId:        session.Id,
		SessionTitle:     session.Title,
		UserMessage:      toChatMessageResponse(userMessage),
		AssistantMessage: toChatMessageResponse(assistantMessage),
	}, nil
}

// Regenerate replaces the latest assistant reply in a session with a fresh
// one for the same user message.
func (s *chatService) Regenerate(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SendMessageResponse, error) {
	session, err := s.findOwnedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to load chat history", err)
	}

	lastUserIdx := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entity.ChatMessageRoleUser {
			lastUserIdx = i
			break
		}
	}
	if lastUserIdx < 0 {
		return nil, apperr.Validation("no user message to regenerate from")
	}
	lastUserMessage := messages[lastUserIdx]

	// Drop replies that followed the question being re-answered.
	for _, msg := range messages[lastUserIdx+1:] {
		if msg.Role != entity.ChatMessageRoleAssistant {
			continue
		}
		if err := uow.ChatMessageRepository().Delete(ctx, msg.Id); err != nil {
			return nil, apperr.Persistence("failed to replace previous reply", err)
		}
	}

	history := messages[:lastUserIdx]
	if len(history) > historyLoadLimit {
		history = history[len(history)-historyLoadLimit:]
	}

	answer := s.orchestrator.Generate(ctx, userId, lastUserMessage.Content, toLLMHistory(history), nil)

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          entity.ChatMessageRoleAssistant,
		Content:       answer.Content,
		Sources:       answer.Sources,
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, apperr.Persistence("failed to process chat message", err)
	}

	return &dto.SendMessageResponse{
		SessionId:        session.Id,
		SessionTitle:     session.Title,
		UserMessage:      toChatMessageResponse(lastUserMessage),
		AssistantMessage: toChatMessageResponse(assistantMessage),
	}, nil
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultSessionTitle
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ChatSession{
		Id:     uuid.New(),
		UserId: userId,
		Title:  title,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, apperr.Persistence("failed to create chat session", err)
	}

	s.publishSessionCreated(ctx, session)

	return toSessionResponse(session, 0), nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to list chat sessions", err)
	}

	responses := make([]dto.ChatSessionResponse, len(sessions))
	for i, session := range sessions {
		count, err := uow.ChatMessageRepository().Count(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
		)
		if err != nil {
			return nil, apperr.Persistence("failed to count session messages", err)
		}
		responses[i] = *toSessionResponse(session, count)
	}
	return responses, nil
}

func (s *chatService) ShowSession(ctx context.Context, userId, id uuid.UUID) (*dto.ChatSessionDetailResponse, error) {
	session, err := s.findOwnedSession(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	messages, err := s.ListMessages(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	return &dto.ChatSessionDetailResponse{
		ChatSessionResponse: *toSessionResponse(session, int64(len(messages))),
		Messages:            messages,
	}, nil
}

func (s *chatService) RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error) {
	session, err := s.findOwnedSession(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session.Title = req.Title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, apperr.Persistence("failed to rename chat session", err)
	}

	count, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to count session messages", err)
	}
	return toSessionResponse(session, count), nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, id uuid.UUID) error {
	session, err := s.findOwnedSession(ctx, userId, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperr.Persistence("failed to delete chat session", err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return apperr.Persistence("failed to delete session messages", err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return apperr.Persistence("failed to delete chat session", err)
	}
	if err := uow.Commit(); err != nil {
		return apperr.Persistence("failed to delete chat session", err)
	}
	return nil
}

func (s *chatService) ListMessages(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.ChatMessageResponse, error) {
	if _, err := s.findOwnedSession(ctx, userId, sessionId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to list session messages", err)
	}

	responses := make([]dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = *toChatMessageResponse(msg)
	}
	return responses, nil
}

// ClearSession wipes a session's messages and resets its title, leaving an
// empty session behind.
func (s *chatService) ClearSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	session, err := s.findOwnedSession(ctx, userId, sessionId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperr.Persistence("failed to clear chat session", err)
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return apperr.Persistence("failed to clear session messages", err)
	}
	session.Title = defaultSessionTitle
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return apperr.Persistence("failed to reset session title", err)
	}
	return uow.Commit()
}

func (s *chatService) Stats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().Count(ctx, specification.OwnedByUser{UserID: userId})
	if err != nil {
		return nil, apperr.Persistence("failed to count chat sessions", err)
	}
	messages, err := uow.ChatMessageRepository().CountForUser(ctx, userId)
	if err != nil {
		return nil, apperr.Persistence("failed to count chat messages", err)
	}

	return &dto.ChatStatsResponse{
		TotalSessions: sessions,
		TotalMessages: messages,
	}, nil
}

// resolveSession loads the target session, creating a fresh one when no id
// was given.
func (s *chatService) resolveSession(ctx context.Context, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	if sessionId == uuid.Nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		session := &entity.ChatSession{
			Id:     uuid.New(),
			UserId: userId,
			Title:  defaultSessionTitle,
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, apperr.Persistence("failed to create chat session", err)
		}
		s.publishSessionCreated(ctx, session)
		return session, nil
	}
	return s.findOwnedSession(ctx, userId, sessionId)
}

func (s *chatService) findOwnedSession(ctx context.Context, userId, id uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, apperr.Persistence("failed to load chat session", err)
	}
	if session == nil {
		return nil, apperr.NotFound("chat session not found")
	}
	return session, nil
}

// loadHistory returns the session's recent messages oldest-first, excluding
// the just-persisted user message.
func (s *chatService) loadHistory(ctx context.Context, sessionId, excludeId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyLoadLimit + 1},
	)
	if err != nil {
		return nil, err
	}

	history := make([]*entity.ChatMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Id == excludeId {
			continue
		}
		history = append(history, messages[i])
	}
	if len(history) > historyLoadLimit {
		history = history[len(history)-historyLoadLimit:]
	}
	return history, nil
}

// maybeDeriveTitle names the session after the first exchange.
func (s *chatService) maybeDeriveTitle(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, firstMessage string) error {
	count, err := uow.ChatMessageRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
	)
	if err != nil {
		return err
	}
	if count > 2 {
		return nil
	}
	session.Title = utils.TruncateWithEllipsis(strings.TrimSpace(firstMessage), sessionTitleLength)
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *chatService) publishSessionCreated(ctx context.Context, session *entity.ChatSession) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.New(events.TypeChatSessionCreated, map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    session.UserId.String(),
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("chat", "failed to publish event", map[string]interface{}{
			"event": events.TypeChatSessionCreated,
			"error": err.Error(),
		})
	}
}

func toLLMHistory(messages []*entity.ChatMessage) []llm.Message {
	history := make([]llm.Message, len(messages))
	for i, msg := range messages {
		history[i] = llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return history
}

func toSessionResponse(session *entity.ChatSession, messageCount int64) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		Id:           session.Id,
		Title:        session.Title,
		MessageCount: messageCount,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func toChatMessageResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	var sources []dto.SourceDTO
	if len(msg.Sources) > 0 {
		sources = make([]dto.SourceDTO, len(msg.Sources))
		for i, src := range msg.Sources {
			sources[i] = dto.SourceDTO{
				DocumentId:     src.DocumentId,
				DocumentName:   src.DocumentName,
				PageNumber:     src.PageNumber,
				RelevanceScore: src.RelevanceScore,
				Snippet:        src.Snippet,
			}
		}
	}
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		Sources:   sources,
		CreatedAt: msg.CreatedAt,
	}
}
