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

type fakeMaterialRepo struct {
	materials map[string]*entity.RecycledMaterial
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]*entity.RecycledMaterial)}
}

func (f *fakeMaterialRepo) Create(ctx context.Context, material *entity.RecycledMaterial) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	material.CreatedAt = time.Now()
	f.materials[material.ID] = material
	return nil
}

func (f *fakeMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RecycledMaterial, error) {
	material, ok := f.materials[id]
	if !ok {
		return nil, errors.NotFound("Recycled material", nil)
	}
	return material, nil
}

func (f *fakeMaterialRepo) ListByStatus(ctx context.Context, materialStatus string, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	var matched []*entity.RecycledMaterial
	for _, material := range f.materials {
		if material.Status == materialStatus {
			matched = append(matched, material)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeMaterialRepo) ListByRecycler(ctx context.Context, recyclerID string, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	var matched []*entity.RecycledMaterial
	for _, material := range f.materials {
		if material.RecyclerID == recyclerID {
			matched = append(matched, material)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeMaterialRepo) SetStatus(ctx context.Context, id, materialStatus string) error {
	material, ok := f.materials[id]
	if !ok {
		return errors.NotFound("Recycled material", nil)
	}
	material.Status = materialStatus
	return nil
}

func newMaterialFixture() (*MaterialUseCase, *fakeMaterialRepo) {
	materials := newFakeMaterialRepo()
	users := &fakeUserRepo{profiles: map[string]*entity.UserProfile{
		"ind-1": {UID: "ind-1", Role: entity.RoleIndustrialist},
		"rec-1": {UID: "rec-1", PlantName: "GreenCycle", Role: entity.RoleRecycler},
	}}
	return NewMaterialUseCase(materials, users), materials
}

func TestCreateMaterialRequiresRecycler(t *testing.T) {
	uc, _ := newMaterialFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, "ind-1", CreateMaterialInput{Type: "Glass", Quantity: 50, Price: 2})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.Create(ctx, "rec-1", CreateMaterialInput{Type: "Glass", Quantity: 0, Price: 2})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Create(ctx, "rec-1", CreateMaterialInput{Type: "Glass", Quantity: 50, Price: -1})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateMaterialStartsAvailable(t *testing.T) {
	uc, _ := newMaterialFixture()

	material, err := uc.Create(context.Background(), "rec-1", CreateMaterialInput{Type: "Glass", Quantity: 50, Price: 2})
	require.NoError(t, err)

	assert.Equal(t, entity.MaterialStatusAvailable, material.Status)
	assert.Equal(t, "rec-1", material.RecyclerID)
}

func TestMarkSoldOwnerOnlyAndOnce(t *testing.T) {
	uc, materials := newMaterialFixture()
	ctx := context.Background()

	material, err := uc.Create(ctx, "rec-1", CreateMaterialInput{Type: "Glass", Quantity: 50, Price: 2})
	require.NoError(t, err)

	err = uc.MarkSold(ctx, "ind-1", material.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.MarkSold(ctx, "rec-1", material.ID))
	assert.Equal(t, entity.MaterialStatusSold, materials.materials[material.ID].Status)

	err = uc.MarkSold(ctx, "rec-1", material.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}
