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

type firestoreMaterialRepository struct {
	client *firestore.Client
}

func NewFirestoreMaterialRepository(client *firestore.Client) repository.MaterialRepository {
	return &firestoreMaterialRepository{
		client: client,
	}
}

func (r *firestoreMaterialRepository) Create(ctx context.Context, material *entity.RecycledMaterial) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	material.CreatedAt = time.Now()

	_, err := r.client.Collection("recycledMaterials").Doc(material.ID).Set(ctx, material)
	if err != nil {
		return errors.Internal("Failed to create recycled material", err)
	}
	return nil
}

func (r *firestoreMaterialRepository) GetByID(ctx context.Context, id string) (*entity.RecycledMaterial, error) {
	doc, err := r.client.Collection("recycledMaterials").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Recycled material", err)
		}
		return nil, errors.Internal("Failed to get recycled material", err)
	}

	var material entity.RecycledMaterial
	if err := doc.DataTo(&material); err != nil {
		return nil, errors.Internal("Failed to parse recycled material data", err)
	}
	material.ID = doc.Ref.ID

	return &material, nil
}

func (r *firestoreMaterialRepository) ListByStatus(ctx context.Context, materialStatus string, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	query := r.client.Collection("recycledMaterials").
		Where("status", "==", materialStatus).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreMaterialRepository) ListByRecycler(ctx context.Context, recyclerID string, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	query := r.client.Collection("recycledMaterials").
		Where("recyclerId", "==", recyclerID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreMaterialRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.RecycledMaterial, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count recycled materials", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var materials []*entity.RecycledMaterial

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate recycled materials", err)
		}

		var material entity.RecycledMaterial
		if err := doc.DataTo(&material); err != nil {
			continue // skip malformed documents
		}
		material.ID = doc.Ref.ID
		materials = append(materials, &material)
	}

	return materials, total, nil
}

func (r *firestoreMaterialRepository) SetStatus(ctx context.Context, id, materialStatus string) error {
	_, err := r.client.Collection("recycledMaterials").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: materialStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Recycled material", err)
		}
		return errors.Internal("Failed to update recycled material status", err)
	}
	return nil
}
