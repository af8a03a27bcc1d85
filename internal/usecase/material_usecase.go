package usecase

import (
	"context"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/pkg/errors"
	"econexus/pkg/logger"
)

type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
	userRepo     repository.UserRepository
}

func NewMaterialUseCase(materialRepo repository.MaterialRepository, userRepo repository.UserRepository) *MaterialUseCase {
	return &MaterialUseCase{
		materialRepo: materialRepo,
		userRepo:     userRepo,
	}
}

type CreateMaterialInput struct {
	Type     string
	Quantity float64
	Price    float64
}

func (uc *MaterialUseCase) Create(ctx context.Context, uid string, input CreateMaterialInput) (*entity.RecycledMaterial, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.Role != entity.RoleRecycler {
		return nil, errors.Forbidden("Only recyclers can list recycled materials", nil)
	}
	if input.Quantity <= 0 {
		return nil, errors.BadRequest("Quantity must be greater than zero", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price must not be negative", nil)
	}

	material := &entity.RecycledMaterial{
		RecyclerID: uid,
		Type:       input.Type,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Status:     entity.MaterialStatusAvailable,
	}

	if err := uc.materialRepo.Create(ctx, material); err != nil {
		logger.Error("Failed to create material for recycler %s: %v", uid, err)
		return nil, err
	}

	// The industrialist fan-out happens in the trigger layer once the
	// create shows up on the change feed.
	return material, nil
}

func (uc *MaterialUseCase) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	return uc.materialRepo.ListByStatus(ctx, entity.MaterialStatusAvailable, limit, offset)
}

func (uc *MaterialUseCase) ListMine(ctx context.Context, uid string, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	return uc.materialRepo.ListByRecycler(ctx, uid, limit, offset)
}

func (uc *MaterialUseCase) MarkSold(ctx context.Context, uid, materialID string) error {
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if material.RecyclerID != uid {
		return errors.Forbidden("Only the listing recycler can mark a material as sold", nil)
	}
	if material.Status == entity.MaterialStatusSold {
		return errors.Conflict("Material is already sold", nil)
	}

	return uc.materialRepo.SetStatus(ctx, materialID, entity.MaterialStatusSold)
}
