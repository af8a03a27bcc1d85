package usecase

import (
	"context"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
	}
}

func (uc *NotificationUseCase) List(ctx context.Context, uid string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(ctx, uid, limit, offset)
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, uid string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, uid)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, uid, notificationID string) error {
	return uc.notificationRepo.MarkRead(ctx, notificationID, uid)
}
