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

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) CreateAll(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	now := time.Now()
	for _, notification := range notifications {
		if notification.ID == "" {
			notification.ID = uuid.New().String()
		}
		notification.CreatedAt = now
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, notification := range notifications {
			docRef := r.client.Collection("notifications").Doc(notification.ID)
			if err := tx.Create(docRef, notification); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Internal("Failed to create notifications", err)
	}
	return nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection("notifications").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count notifications", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			continue // skip malformed documents
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, &notification)
	}

	return notifications, total, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("read", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	docRef := r.client.Collection("notifications").Doc(id)

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return errors.Internal("Failed to parse notification data", err)
	}
	if notification.UserID != userID {
		return errors.Forbidden("Notification belongs to another user", nil)
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		return errors.Internal("Failed to mark notification as read", err)
	}
	return nil
}
