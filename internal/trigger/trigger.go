// Package trigger reacts to waste-request and recycled-material document
// events and fans out notification records to the affected users. Handlers
// are invoked at least once per event and never roll back the document write
// that produced the event.
package trigger

import (
	"context"
	"fmt"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/pkg/errors"
	"econexus/pkg/logger"
)

const fallbackRecyclerName = "A recycler"
const fallbackTransporterName = "A transporter"

// Publisher pushes a freshly created notification to a connected user.
// Delivery is best effort; the notification document is the source of truth.
type Publisher interface {
	PublishNotification(userID string, notification *entity.Notification)
}

// RequestEvent is one observed update of a waste-request document.
type RequestEvent struct {
	Before *entity.WasteRequest
	After  *entity.WasteRequest
}

type requestHandler func(ctx context.Context, after *entity.WasteRequest) error

type transitionKey struct {
	From string
	To   string
}

type Triggers struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	publisher        Publisher
	table            map[transitionKey]requestHandler
}

func NewTriggers(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, publisher Publisher) *Triggers {
	t := &Triggers{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
	// The transition table is the single place that decides which status
	// changes carry a side effect. Pairs without an entry, including
	// in-transit to completed, produce no notifications.
	t.table = map[transitionKey]requestHandler{
		{entity.RequestStatusPending, entity.RequestStatusAccepted}:   t.onRequestAccepted,
		{entity.RequestStatusAccepted, entity.RequestStatusInTransit}: t.onJobDispatched,
	}
	return t
}

// HandleRequestUpdate consults the transition table with the before/after
// status pair. Updates that do not change the status across a recognized
// pair are ignored, so edits to unrelated fields never duplicate
// notifications.
func (t *Triggers) HandleRequestUpdate(ctx context.Context, event RequestEvent) error {
	if event.Before == nil || event.After == nil {
		return nil
	}

	handler, ok := t.table[transitionKey{From: event.Before.Status, To: event.After.Status}]
	if !ok {
		return nil
	}
	return handler(ctx, event.After)
}

func (t *Triggers) onRequestAccepted(ctx context.Context, request *entity.WasteRequest) error {
	logger.Info("Request accepted trigger fired for request %s", request.ID)

	if request.IndustrialistID == "" || request.AcceptedByRecyclerID == "" {
		logger.Error("Industrialist ID or Recycler ID is missing from waste request %s", request.ID)
		return errors.BadRequest("Industrialist ID or Recycler ID is missing from the waste request", nil)
	}

	recyclerName := t.recyclerName(ctx, request.AcceptedByRecyclerID)
	message := fmt.Sprintf("Your request for %s has been accepted by %s.", request.Type, recyclerName)

	notifications := []*entity.Notification{
		{
			UserID:  request.IndustrialistID,
			Message: message,
			Link:    "/dashboard",
		},
	}

	if err := t.notificationRepo.CreateAll(ctx, notifications); err != nil {
		logger.Error("Failed to create notification for industrialist %s: %v", request.IndustrialistID, err)
		return err
	}

	logger.Info("Notification created for industrialist %s: %s", request.IndustrialistID, message)
	t.publish(notifications)
	return nil
}

func (t *Triggers) onJobDispatched(ctx context.Context, request *entity.WasteRequest) error {
	logger.Info("Job dispatched trigger fired for request %s", request.ID)

	if request.IndustrialistID == "" || request.AcceptedByRecyclerID == "" {
		logger.Error("Industrialist or Recycler ID is missing on request %s", request.ID)
		return errors.BadRequest("Industrialist or Recycler ID is missing", nil)
	}

	transporterName := request.TransporterName
	if transporterName == "" {
		transporterName = fallbackTransporterName
	}
	message := fmt.Sprintf("%s is on their way to pick up the %s waste.", transporterName, request.Type)

	// Both recipients get their record in one atomic batch; a partial
	// fan-out is never observable.
	notifications := []*entity.Notification{
		{
			UserID:  request.IndustrialistID,
			Message: message,
			Link:    "/dashboard",
		},
		{
			UserID:  request.AcceptedByRecyclerID,
			Message: message,
			Link:    "/dashboard",
		},
	}

	if err := t.notificationRepo.CreateAll(ctx, notifications); err != nil {
		logger.Error("Failed to create notifications for request %s: %v", request.ID, err)
		return err
	}

	logger.Info("Notifications sent to industrialist %s and recycler %s", request.IndustrialistID, request.AcceptedByRecyclerID)
	t.publish(notifications)
	return nil
}

// HandleMaterialCreated notifies every Industrialist that a new recycled
// material is available. All notifications for one material commit together
// or not at all.
func (t *Triggers) HandleMaterialCreated(ctx context.Context, material *entity.RecycledMaterial) error {
	logger.Info("New material trigger fired for material %s", material.ID)

	if material.RecyclerID == "" {
		logger.Error("Recycler ID is missing from new material %s", material.ID)
		return errors.BadRequest("Recycler ID is missing from the new material", nil)
	}

	recycler, err := t.userRepo.GetByID(ctx, material.RecyclerID)
	if err != nil {
		logger.Error("Could not find recycler profile for ID %s: %v", material.RecyclerID, err)
		return err
	}
	recyclerName := recycler.PublicName()
	if recyclerName == "" {
		recyclerName = fallbackRecyclerName
	}

	industrialists, _, err := t.userRepo.ListByRole(ctx, entity.RoleIndustrialist, 0, 0)
	if err != nil {
		logger.Error("Failed to query industrialists for material %s: %v", material.ID, err)
		return err
	}
	if len(industrialists) == 0 {
		logger.Info("No industrialists found to notify for material %s", material.ID)
		return nil
	}

	message := fmt.Sprintf("New material available: %s from %s.", material.Type, recyclerName)

	notifications := make([]*entity.Notification, 0, len(industrialists))
	for _, industrialist := range industrialists {
		notifications = append(notifications, &entity.Notification{
			UserID:  industrialist.UID,
			Message: message,
			Link:    "/dashboard/my-inventory",
		})
	}

	if err := t.notificationRepo.CreateAll(ctx, notifications); err != nil {
		logger.Error("Failed to commit notification batch for material %s: %v", material.ID, err)
		return err
	}

	logger.Info("Batch committed, notifications sent to %d industrialist(s)", len(notifications))
	t.publish(notifications)
	return nil
}

// recyclerName resolves the display name shown in acceptance notifications.
// A missing profile is not fatal here, the generic label is used instead.
func (t *Triggers) recyclerName(ctx context.Context, recyclerID string) string {
	recycler, err := t.userRepo.GetByID(ctx, recyclerID)
	if err != nil {
		logger.Warn("Could not load recycler profile %s, using fallback name: %v", recyclerID, err)
		return fallbackRecyclerName
	}
	if name := recycler.PublicName(); name != "" {
		return name
	}
	return fallbackRecyclerName
}

func (t *Triggers) publish(notifications []*entity.Notification) {
	if t.publisher == nil {
		return
	}
	for _, notification := range notifications {
		t.publisher.PublishNotification(notification.UserID, notification)
	}
}
