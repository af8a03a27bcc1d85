package repository

import (
	"context"

	"econexus/internal/domain/entity"
)

type NotificationRepository interface {
	// CreateAll writes every notification in one atomic batch. A fan-out is
	// never partially applied: either all recipients get their record or
	// none do.
	CreateAll(ctx context.Context, notifications []*entity.Notification) error

	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
}
