package trigger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econexus/internal/domain/entity"
	"econexus/pkg/errors"
)

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

type fakeNotificationRepo struct {
	created []*entity.Notification
	failAll bool
}

func (f *fakeNotificationRepo) CreateAll(ctx context.Context, notifications []*entity.Notification) error {
	if f.failAll {
		return errors.Internal("Failed to create notifications", nil)
	}
	f.created = append(f.created, notifications...)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	var matched []*entity.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			matched = append(matched, n)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}

func newFixture() (*Triggers, *fakeUserRepo, *fakeNotificationRepo) {
	users := &fakeUserRepo{profiles: make(map[string]*entity.UserProfile)}
	notifications := &fakeNotificationRepo{}
	return NewTriggers(users, notifications, nil), users, notifications
}

func acceptedRequest() *entity.WasteRequest {
	return &entity.WasteRequest{
		ID:                   "req-1",
		IndustrialistID:      "ind-1",
		Type:                 "Plastic",
		Quantity:             500,
		Status:               entity.RequestStatusAccepted,
		AcceptedByRecyclerID: "rec-1",
		RecyclerName:         "GreenCycle",
	}
}

func TestAcceptTransitionNotifiesIndustrialist(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, PlantName: "GreenCycle"}

	after := acceptedRequest()
	before := *after
	before.Status = entity.RequestStatusPending
	before.AcceptedByRecyclerID = ""
	before.RecyclerName = ""

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "ind-1", notifications.created[0].UserID)
	assert.Equal(t, "Your request for Plastic has been accepted by GreenCycle.", notifications.created[0].Message)
	assert.Equal(t, "/dashboard", notifications.created[0].Link)
	assert.False(t, notifications.created[0].Read)
}

func TestAcceptTransitionFallsBackToDisplayName(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, DisplayName: "Riya"}

	after := acceptedRequest()
	before := *after
	before.Status = entity.RequestStatusPending

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	require.NoError(t, err)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, "Your request for Plastic has been accepted by Riya.", notifications.created[0].Message)
}

func TestAcceptTransitionMissingProfileUsesGenericLabel(t *testing.T) {
	triggers, _, notifications := newFixture()

	after := acceptedRequest()
	before := *after
	before.Status = entity.RequestStatusPending

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	require.NoError(t, err)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, "Your request for Plastic has been accepted by A recycler.", notifications.created[0].Message)
}

func TestAcceptTransitionMissingIDsWritesNothing(t *testing.T) {
	triggers, _, notifications := newFixture()

	after := acceptedRequest()
	after.AcceptedByRecyclerID = ""
	before := *after
	before.Status = entity.RequestStatusPending

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	assert.Error(t, err)
	assert.Empty(t, notifications.created)
}

func TestNonMatchingTransitionsWriteNothing(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, PlantName: "GreenCycle"}

	pairs := []struct {
		from string
		to   string
	}{
		{entity.RequestStatusPending, entity.RequestStatusPending},
		{entity.RequestStatusAccepted, entity.RequestStatusAccepted},
		{entity.RequestStatusPending, entity.RequestStatusCancelled},
		{entity.RequestStatusAccepted, entity.RequestStatusCancelled},
		{entity.RequestStatusInTransit, entity.RequestStatusCompleted},
		{entity.RequestStatusAccepted, entity.RequestStatusPending},
	}

	for _, pair := range pairs {
		after := acceptedRequest()
		after.Status = pair.to
		before := *after
		before.Status = pair.from

		err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
		assert.NoError(t, err, "%s -> %s", pair.from, pair.to)
	}
	assert.Empty(t, notifications.created)
}

func TestDispatchTransitionNotifiesBothParties(t *testing.T) {
	triggers, _, notifications := newFixture()

	after := acceptedRequest()
	after.Status = entity.RequestStatusInTransit
	after.TransportedByID = "tra-1"
	after.TransporterName = "SwiftHaul"
	before := *after
	before.Status = entity.RequestStatusAccepted

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	require.NoError(t, err)

	require.Len(t, notifications.created, 2)
	recipients := []string{notifications.created[0].UserID, notifications.created[1].UserID}
	assert.ElementsMatch(t, []string{"ind-1", "rec-1"}, recipients)
	for _, n := range notifications.created {
		assert.Equal(t, "SwiftHaul is on their way to pick up the Plastic waste.", n.Message)
	}
}

func TestDispatchTransitionFallsBackToGenericTransporter(t *testing.T) {
	triggers, _, notifications := newFixture()

	after := acceptedRequest()
	after.Status = entity.RequestStatusInTransit
	after.TransporterName = ""
	before := *after
	before.Status = entity.RequestStatusAccepted

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	require.NoError(t, err)
	require.Len(t, notifications.created, 2)
	assert.Equal(t, "A transporter is on their way to pick up the Plastic waste.", notifications.created[0].Message)
}

func TestDispatchTransitionMissingIDsWritesNeither(t *testing.T) {
	triggers, _, notifications := newFixture()

	// Either missing ID means zero notifications, never exactly one.
	for _, clear := range []string{"industrialist", "recycler"} {
		after := acceptedRequest()
		after.Status = entity.RequestStatusInTransit
		if clear == "industrialist" {
			after.IndustrialistID = ""
		} else {
			after.AcceptedByRecyclerID = ""
		}
		before := *after
		before.Status = entity.RequestStatusAccepted

		err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
		assert.Error(t, err)
	}
	assert.Empty(t, notifications.created)
}

func TestDispatchBatchFailureWritesNeither(t *testing.T) {
	triggers, _, notifications := newFixture()
	notifications.failAll = true

	after := acceptedRequest()
	after.Status = entity.RequestStatusInTransit
	after.TransporterName = "SwiftHaul"
	before := *after
	before.Status = entity.RequestStatusAccepted

	err := triggers.HandleRequestUpdate(context.Background(), RequestEvent{Before: &before, After: after})
	assert.Error(t, err)
	assert.Empty(t, notifications.created)
}

func TestDuplicateDeliveryDuplicatesNotifications(t *testing.T) {
	// Trigger delivery is at-least-once; a replayed event writes again.
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, PlantName: "GreenCycle"}

	after := acceptedRequest()
	before := *after
	before.Status = entity.RequestStatusPending

	event := RequestEvent{Before: &before, After: after}
	require.NoError(t, triggers.HandleRequestUpdate(context.Background(), event))
	require.NoError(t, triggers.HandleRequestUpdate(context.Background(), event))

	assert.Len(t, notifications.created, 2)
}

func TestMaterialFanOutNotifiesEveryIndustrialist(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, PlantName: "GreenCycle"}
	users.profiles["ind-1"] = &entity.UserProfile{UID: "ind-1", Role: entity.RoleIndustrialist}
	users.profiles["ind-2"] = &entity.UserProfile{UID: "ind-2", Role: entity.RoleIndustrialist}
	users.profiles["ind-3"] = &entity.UserProfile{UID: "ind-3", Role: entity.RoleIndustrialist}
	users.profiles["tra-1"] = &entity.UserProfile{UID: "tra-1", Role: entity.RoleTransporter}

	material := &entity.RecycledMaterial{ID: "mat-1", RecyclerID: "rec-1", Type: "Glass", Quantity: 100}

	err := triggers.HandleMaterialCreated(context.Background(), material)
	require.NoError(t, err)

	require.Len(t, notifications.created, 3)
	recipients := make([]string, 0, 3)
	for _, n := range notifications.created {
		recipients = append(recipients, n.UserID)
		assert.Equal(t, "New material available: Glass from GreenCycle.", n.Message)
		assert.Equal(t, "/dashboard/my-inventory", n.Link)
	}
	assert.ElementsMatch(t, []string{"ind-1", "ind-2", "ind-3"}, recipients)
}

func TestMaterialFanOutNoIndustrialistsIsNoOp(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["rec-1"] = &entity.UserProfile{UID: "rec-1", Role: entity.RoleRecycler, PlantName: "GreenCycle"}

	material := &entity.RecycledMaterial{ID: "mat-1", RecyclerID: "rec-1", Type: "Glass"}

	err := triggers.HandleMaterialCreated(context.Background(), material)
	assert.NoError(t, err)
	assert.Empty(t, notifications.created)
}

func TestMaterialFanOutMissingRecyclerIDAborts(t *testing.T) {
	triggers, _, notifications := newFixture()

	material := &entity.RecycledMaterial{ID: "mat-1", Type: "Glass"}

	err := triggers.HandleMaterialCreated(context.Background(), material)
	assert.Error(t, err)
	assert.Empty(t, notifications.created)
}

func TestMaterialFanOutMissingRecyclerProfileAborts(t *testing.T) {
	triggers, users, notifications := newFixture()
	users.profiles["ind-1"] = &entity.UserProfile{UID: "ind-1", Role: entity.RoleIndustrialist}

	material := &entity.RecycledMaterial{ID: "mat-1", RecyclerID: "rec-missing", Type: "Glass"}

	err := triggers.HandleMaterialCreated(context.Background(), material)
	assert.Error(t, err)
	assert.Empty(t, notifications.created)
}
