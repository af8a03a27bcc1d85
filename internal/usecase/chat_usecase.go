package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	ws "econexus/internal/infrastructure/websocket"
	"econexus/pkg/errors"
	"econexus/pkg/logger"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	notifier         *ws.Notifier
}

func NewChatUseCase(conversationRepo repository.ConversationRepository, userRepo repository.UserRepository, notifier *ws.Notifier) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// ConversationID derives the deterministic document ID for a participant
// pair. Both orderings of the same pair map to the same ID, which is what
// makes the create-if-absent lookup race free.
func ConversationID(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	sum := sha1.Sum([]byte(strings.Join(pair, ":")))
	return hex.EncodeToString(sum[:])
}

// StartConversation finds or creates the conversation between the sender
// and the recipient and returns it.
func (uc *ChatUseCase) StartConversation(ctx context.Context, senderID, recipientID string) (*entity.Conversation, error) {
	if senderID == "" {
		return nil, errors.Unauthorized("You must be logged in to start a conversation", nil)
	}
	if recipientID == "" {
		return nil, errors.BadRequest("Recipient ID is missing", nil)
	}
	if senderID == recipientID {
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, errors.NotFound("Sender profile", err)
	}
	recipient, err := uc.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, errors.NotFound("Recipient profile", err)
	}

	participants := []string{senderID, recipientID}
	sort.Strings(participants)

	conversation := &entity.Conversation{
		ID:           ConversationID(senderID, recipientID),
		Participants: participants,
		// Profile snapshot captured at creation time, not kept live-synced.
		ParticipantProfiles: map[string]entity.ParticipantProfile{
			senderID: {
				DisplayName: sender.DisplayName,
				PlantName:   sender.PlantName,
				Role:        sender.Role,
			},
			recipientID: {
				DisplayName: recipient.DisplayName,
				PlantName:   recipient.PlantName,
				Role:        recipient.Role,
			},
		},
		UnreadCounts: map[string]int{
			senderID:    0,
			recipientID: 0,
		},
	}

	result, created, err := uc.conversationRepo.GetOrCreate(ctx, conversation)
	if err != nil {
		logger.Error("Failed to start conversation between %s and %s: %v", senderID, recipientID, err)
		return nil, err
	}
	if created {
		logger.Info("Conversation %s created between %s and %s", result.ID, senderID, recipientID)
	}

	return result, nil
}

type SendMessageInput struct {
	ConversationID string
	Text           string
}

// SendMessage appends the message and updates the conversation preview and
// the recipient's unread counter in a single atomic write. On failure the
// caller keeps the draft.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.BadRequest("Message text must not be empty", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("User is not a participant in this conversation", nil)
	}

	recipientID := conversation.OtherParticipant(senderID)

	message := &entity.Message{
		ConversationID: input.ConversationID,
		SenderID:       senderID,
		Text:           input.Text,
	}

	if err := uc.conversationRepo.AppendMessage(ctx, message, recipientID); err != nil {
		logger.Error("Failed to send message in conversation %s: %v", input.ConversationID, err)
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.PublishMessage(recipientID, message)
		if updated, err := uc.conversationRepo.GetByID(ctx, input.ConversationID); err == nil {
			uc.notifier.PublishConversationUpdate(recipientID, updated)
		}
	}

	return message, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, uid string, limit, offset int) ([]*entity.Conversation, int64, error) {
	return uc.conversationRepo.ListByUser(ctx, uid, limit, offset)
}

func (uc *ChatUseCase) GetConversation(ctx context.Context, uid, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(uid) {
		return nil, errors.Forbidden("User is not a participant in this conversation", nil)
	}
	return conversation, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, uid, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(uid) {
		return nil, 0, errors.Forbidden("User is not a participant in this conversation", nil)
	}
	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead resets the caller's unread counter. Best effort: a failure just
// leaves the badge stale until the next open.
func (uc *ChatUseCase) MarkRead(ctx context.Context, uid, conversationID string) error {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(uid) {
		return errors.Forbidden("User is not a participant in this conversation", nil)
	}
	return uc.conversationRepo.ResetUnread(ctx, conversationID, uid)
}
