package repository

import (
	"context"

	"econexus/internal/domain/entity"
)

type ConversationRepository interface {
	// GetOrCreate stores the conversation under its pre-assigned ID unless a
	// document with that ID already exists, in which case the existing one is
	// returned. The check and the create run in one transaction, so both
	// sides of a simultaneous first contact resolve to the same document.
	GetOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, bool, error)

	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)

	// AppendMessage writes the message and updates the conversation's
	// lastMessage snapshot and the recipient's unread count in one atomic
	// transaction. Either both land or neither does.
	AppendMessage(ctx context.Context, message *entity.Message, recipientID string) error

	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	ResetUnread(ctx context.Context, conversationID, userID string) error
}
