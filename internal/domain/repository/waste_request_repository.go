package repository

import (
	"context"

	"econexus/internal/domain/entity"
)

type WasteRequestRepository interface {
	Create(ctx context.Context, request *entity.WasteRequest) error
	GetByID(ctx context.Context, id string) (*entity.WasteRequest, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.WasteRequest, int64, error)
	ListByIndustrialist(ctx context.Context, industrialistID string, limit, offset int) ([]*entity.WasteRequest, int64, error)

	// Transition atomically moves a request from one status to another,
	// applying the given field updates in the same write. It fails with a
	// conflict if the request is no longer in the expected status.
	Transition(ctx context.Context, id, fromStatus, toStatus string, updates map[string]interface{}) (*entity.WasteRequest, error)
}
