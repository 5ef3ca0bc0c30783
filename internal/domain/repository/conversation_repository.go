package repository

import (
	"context"

	"tradebinder/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)

	// AppendNegotiationMessage writes the message and the recomputed
	// negotiation status in one transaction, keyed on the conversation doc so
	// negotiation-advancing writes are linearized per conversation.
	AppendNegotiationMessage(ctx context.Context, message *entity.Message, status entity.NegotiationStatus) error
}
