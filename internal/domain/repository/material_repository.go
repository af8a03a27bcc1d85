package repository

import (
	"context"

	"econexus/internal/domain/entity"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *entity.RecycledMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RecycledMaterial, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.RecycledMaterial, int64, error)
	ListByRecycler(ctx context.Context, recyclerID string, limit, offset int) ([]*entity.RecycledMaterial, int64, error)
	SetStatus(ctx context.Context, id, status string) error
}
