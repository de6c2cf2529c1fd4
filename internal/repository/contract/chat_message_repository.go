package contract

import (
	"context"

	"ai-foundry-be/internal/entity"
	"ai-foundry-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountForUser counts messages across every session owned by a user.
	CountForUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
