package repository

import (
	"context"

	"econexus/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByID(ctx context.Context, uid string) (*entity.UserProfile, error)
	Update(ctx context.Context, profile *entity.UserProfile) error
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.UserProfile, int64, error)
}
