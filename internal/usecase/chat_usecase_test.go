package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econexus/internal/domain/entity"
	"econexus/pkg/errors"
)

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	appendFails   bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (f *fakeConversationRepo) GetOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, bool, error) {
	if existing, ok := f.conversations[conversation.ID]; ok {
		return existing, false, nil
	}
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	f.conversations[conversation.ID] = conversation
	return conversation, true, nil
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (f *fakeConversationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	var matched []*entity.Conversation
	for _, conversation := range f.conversations {
		if conversation.HasParticipant(userID) {
			matched = append(matched, conversation)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeConversationRepo) AppendMessage(ctx context.Context, message *entity.Message, recipientID string) error {
	if f.appendFails {
		return errors.Internal("Failed to create message", nil)
	}
	conversation, ok := f.conversations[message.ConversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}

	message.ID = uuid.New().String()
	message.CreatedAt = time.Now()
	f.messages[message.ConversationID] = append(f.messages[message.ConversationID], message)

	// Both effects applied together, mirroring the transactional write.
	conversation.LastMessage = &entity.LastMessage{
		Text:      message.Text,
		SenderID:  message.SenderID,
		CreatedAt: message.CreatedAt,
	}
	if conversation.UnreadCounts == nil {
		conversation.UnreadCounts = make(map[string]int)
	}
	conversation.UnreadCounts[recipientID]++
	conversation.UpdatedAt = message.CreatedAt
	return nil
}

func (f *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	msgs := f.messages[conversationID]
	return msgs, int64(len(msgs)), nil
}

func (f *fakeConversationRepo) ResetUnread(ctx context.Context, conversationID, userID string) error {
	conversation, ok := f.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.UnreadCounts[userID] = 0
	return nil
}

type fakeUserRepo struct {
	profiles map[string]*entity.UserProfile
}

func (f *fakeUserRepo) Create(ctx context.Context, profile *entity.UserProfile) error {
	f.profiles[profile.UID] = profile
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, uid string) (*entity.UserProfile, error) {
	profile, ok := f.profiles[uid]
	if !ok {
		return nil, errors.NotFound("User profile", nil)
	}
	return profile, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, profile *entity.UserProfile) error {
	f.profiles[profile.UID] = profile
	return nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.UserProfile, int64, error) {
	var matched []*entity.UserProfile
	for _, profile := range f.profiles {
		if profile.Role == role {
			matched = append(matched, profile)
		}
	}
	return matched, int64(len(matched)), nil
}

func newChatFixture() (*ChatUseCase, *fakeConversationRepo, *fakeUserRepo) {
	conversations := newFakeConversationRepo()
	users := &fakeUserRepo{profiles: map[string]*entity.UserProfile{
		"ind-1": {UID: "ind-1", DisplayName: "Asha", Role: entity.RoleIndustrialist},
		"rec-1": {UID: "rec-1", DisplayName: "Riya", PlantName: "GreenCycle", Role: entity.RoleRecycler},
	}}
	return NewChatUseCase(conversations, users, nil), conversations, users
}

func TestConversationIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("a", "b"), ConversationID("b", "a"))
	assert.NotEqual(t, ConversationID("a", "b"), ConversationID("a", "c"))
}

func TestStartConversationRejectsBadInput(t *testing.T) {
	uc, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, "", "rec-1")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.StartConversation(ctx, "ind-1", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.StartConversation(ctx, "ind-1", "ind-1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.StartConversation(ctx, "ind-1", "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestStartConversationResolvesSamePairToSameID(t *testing.T) {
	uc, _, _ := newChatFixture()
	ctx := context.Background()

	first, err := uc.StartConversation(ctx, "ind-1", "rec-1")
	require.NoError(t, err)

	second, err := uc.StartConversation(ctx, "rec-1", "ind-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationSnapshotsProfiles(t *testing.T) {
	uc, _, _ := newChatFixture()

	conversation, err := uc.StartConversation(context.Background(), "ind-1", "rec-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"ind-1", "rec-1"}, conversation.Participants)
	assert.Equal(t, "GreenCycle", conversation.ParticipantProfiles["rec-1"].PlantName)
	assert.Equal(t, entity.RoleIndustrialist, conversation.ParticipantProfiles["ind-1"].Role)
	assert.Equal(t, 0, conversation.UnreadCounts["ind-1"])
	assert.Equal(t, 0, conversation.UnreadCounts["rec-1"])
}

func TestSendMessageUpdatesPreviewAndUnreadTogether(t *testing.T) {
	uc, conversations, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.StartConversation(ctx, "ind-1", "rec-1")
	require.NoError(t, err)
	beforeUnread := conversation.UnreadCounts["rec-1"]

	message, err := uc.SendMessage(ctx, "ind-1", SendMessageInput{
		ConversationID: conversation.ID,
		Text:           "Can you take 500kg of plastic?",
	})
	require.NoError(t, err)

	stored := conversations.conversations[conversation.ID]
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, message.Text, stored.LastMessage.Text)
	assert.Equal(t, "ind-1", stored.LastMessage.SenderID)
	assert.Equal(t, beforeUnread+1, stored.UnreadCounts["rec-1"])
	assert.Equal(t, 0, stored.UnreadCounts["ind-1"])
}

func TestSendMessageFailureLeavesConversationUntouched(t *testing.T) {
	uc, conversations, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.StartConversation(ctx, "ind-1", "rec-1")
	require.NoError(t, err)

	conversations.appendFails = true
	_, err = uc.SendMessage(ctx, "ind-1", SendMessageInput{
		ConversationID: conversation.ID,
		Text:           "hello",
	})
	require.Error(t, err)

	stored := conversations.conversations[conversation.ID]
	assert.Nil(t, stored.LastMessage)
	assert.Equal(t, 0, stored.UnreadCounts["rec-1"])
}

func TestSendMessageRejectsEmptyTextAndOutsiders(t *testing.T) {
	uc, _, users := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.StartConversation(ctx, "ind-1", "rec-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "ind-1", SendMessageInput{ConversationID: conversation.ID, Text: "   "})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	users.profiles["tra-1"] = &entity.UserProfile{UID: "tra-1", Role: entity.RoleTransporter}
	_, err = uc.SendMessage(ctx, "tra-1", SendMessageInput{ConversationID: conversation.ID, Text: "hi"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMarkReadResetsOwnCounterOnly(t *testing.T) {
	uc, conversations, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.StartConversation(ctx, "ind-1", "rec-1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "ind-1", SendMessageInput{ConversationID: conversation.ID, Text: "first"})
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, "ind-1", SendMessageInput{ConversationID: conversation.ID, Text: "second"})
	require.NoError(t, err)

	stored := conversations.conversations[conversation.ID]
	require.Equal(t, 2, stored.UnreadCounts["rec-1"])

	require.NoError(t, uc.MarkRead(ctx, "rec-1", conversation.ID))
	assert.Equal(t, 0, stored.UnreadCounts["rec-1"])
}
