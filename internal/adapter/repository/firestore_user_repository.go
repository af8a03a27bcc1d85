package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.client.Collection("users").Doc(profile.UID).Set(ctx, profile)
	if err != nil {
		return errors.Internal("Failed to create user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*entity.UserProfile, error) {
	doc, err := r.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User profile", err)
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}

	var profile entity.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse user profile data", err)
	}
	profile.UID = doc.Ref.ID

	return &profile, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	updateData := map[string]interface{}{
		"displayName":  profile.DisplayName,
		"location":     profile.Location,
		"plantName":    profile.PlantName,
		"materials":    profile.Materials,
		"vehicleTypes": profile.VehicleTypes,
		"updatedAt":    time.Now(),
	}

	// Skip empty fields so a partial update never wipes existing data.
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		if sliceVal, ok := value.([]string); ok && len(sliceVal) == 0 {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(profile.UID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.UserProfile, int64, error) {
	query := r.client.Collection("users").Where("role", "==", role)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count users by role", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var profiles []*entity.UserProfile

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate users", err)
		}

		var profile entity.UserProfile
		if err := doc.DataTo(&profile); err != nil {
			continue // skip malformed documents
		}
		profile.UID = doc.Ref.ID
		profiles = append(profiles, &profile)
	}

	return profiles, total, nil
}
