package usecase

import (
	"context"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/internal/infrastructure/firebase"
	"econexus/pkg/errors"
	"econexus/pkg/logger"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient *firebase.FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient *firebase.FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type CreateProfileInput struct {
	DisplayName  string
	Role         string
	Location     string
	PlantName    string
	Materials    []string
	VehicleTypes []string
}

type UpdateProfileInput struct {
	DisplayName  string
	Location     string
	PlantName    string
	Materials    []string
	VehicleTypes []string
}

func (uc *UserUseCase) CreateProfile(ctx context.Context, uid string, input CreateProfileInput) (*entity.UserProfile, error) {
	if !entity.ValidRole(input.Role) {
		return nil, errors.BadRequest("Role must be Industrialist, Recycler or Transporter", nil)
	}

	if existing, err := uc.userRepo.GetByID(ctx, uid); err == nil && existing != nil {
		return nil, errors.Conflict("Profile already exists", nil)
	}

	email, err := uc.authClient.GetUserEmail(ctx, uid)
	if err != nil {
		logger.Warn("Could not resolve email for user %s: %v", uid, err)
	}

	profile := &entity.UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: input.DisplayName,
		Role:        input.Role,
		Location:    input.Location,
	}

	// Role-specific attributes are only stored for the matching role.
	switch input.Role {
	case entity.RoleRecycler:
		profile.PlantName = input.PlantName
		profile.Materials = input.Materials
	case entity.RoleTransporter:
		profile.VehicleTypes = input.VehicleTypes
	}

	if err := uc.userRepo.Create(ctx, profile); err != nil {
		logger.Error("Failed to create profile for user %s: %v", uid, err)
		return nil, err
	}

	return profile, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.UserProfile, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		profile.DisplayName = input.DisplayName
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if profile.Role == entity.RoleRecycler {
		if input.PlantName != "" {
			profile.PlantName = input.PlantName
		}
		if len(input.Materials) > 0 {
			profile.Materials = input.Materials
		}
	}
	if profile.Role == entity.RoleTransporter && len(input.VehicleTypes) > 0 {
		profile.VehicleTypes = input.VehicleTypes
	}

	if err := uc.userRepo.Update(ctx, profile); err != nil {
		logger.Error("Failed to update profile for user %s: %v", uid, err)
		return nil, err
	}

	return profile, nil
}

func (uc *UserUseCase) ListRecyclers(ctx context.Context, limit, offset int) ([]*entity.UserProfile, int64, error) {
	return uc.userRepo.ListByRole(ctx, entity.RoleRecycler, limit, offset)
}

func (uc *UserUseCase) ListTransporters(ctx context.Context, limit, offset int) ([]*entity.UserProfile, int64, error) {
	return uc.userRepo.ListByRole(ctx, entity.RoleTransporter, limit, offset)
}
