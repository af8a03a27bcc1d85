package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/pkg/errors"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) GetOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, bool, error) {
	docRef := r.client.Collection("conversations").Doc(conversation.ID)

	var result entity.Conversation
	created := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil {
			if err := doc.DataTo(&result); err != nil {
				return errors.Internal("Failed to parse conversation data", err)
			}
			result.ID = doc.Ref.ID
			created = false
			return nil
		}
		if status.Code(err) != codes.NotFound {
			return errors.Internal("Failed to look up conversation", err)
		}

		now := time.Now()
		conversation.CreatedAt = now
		conversation.UpdatedAt = now

		if err := tx.Create(docRef, conversation); err != nil {
			return errors.Internal("Failed to create conversation", err)
		}
		result = *conversation
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &result, created, nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conversation.ID = doc.Ref.ID

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	query := r.client.Collection("conversations").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch conversations", err)
	}
	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var conversations []*entity.Conversation
	for i := start; i < end; i++ {
		var conversation entity.Conversation
		if err := allDocs[i].DataTo(&conversation); err != nil {
			continue // skip malformed documents
		}
		conversation.ID = allDocs[i].Ref.ID
		conversations = append(conversations, &conversation)
	}

	return conversations, total, nil
}

func (r *firestoreConversationRepository) AppendMessage(ctx context.Context, message *entity.Message, recipientID string) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	convRef := r.client.Collection("conversations").Doc(message.ConversationID)
	msgRef := convRef.Collection("messages").Doc(message.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		convDoc, err := tx.Get(convRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Conversation", err)
			}
			return errors.Internal("Failed to get conversation", err)
		}

		var conversation entity.Conversation
		if err := convDoc.DataTo(&conversation); err != nil {
			return errors.Internal("Failed to parse conversation data", err)
		}

		unread := 0
		if conversation.UnreadCounts != nil {
			unread = conversation.UnreadCounts[recipientID]
		}

		if err := tx.Create(msgRef, message); err != nil {
			return errors.Internal("Failed to create message", err)
		}

		updates := []firestore.Update{
			{Path: "lastMessage", Value: &entity.LastMessage{
				Text:      message.Text,
				SenderID:  message.SenderID,
				CreatedAt: message.CreatedAt,
			}},
			{Path: "unreadCounts." + recipientID, Value: unread + 1},
			{Path: "updatedAt", Value: message.CreatedAt},
		}
		if err := tx.Update(convRef, updates); err != nil {
			return errors.Internal("Failed to update conversation", err)
		}
		return nil
	})
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue // skip malformed documents
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreConversationRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	_, err := r.client.Collection("conversations").Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "unreadCounts." + userID, Value: 0},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", err)
		}
		return errors.Internal("Failed to reset unread count", err)
	}
	return nil
}
