package usecase

import (
	"context"

	"econexus/internal/domain/entity"
	"econexus/internal/domain/repository"
	"econexus/pkg/errors"
	"econexus/pkg/logger"
)

type WasteRequestUseCase struct {
	requestRepo repository.WasteRequestRepository
	userRepo    repository.UserRepository
}

func NewWasteRequestUseCase(requestRepo repository.WasteRequestRepository, userRepo repository.UserRepository) *WasteRequestUseCase {
	return &WasteRequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

type CreateWasteRequestInput struct {
	Type     string
	Quantity float64
	Notes    string
}

func (uc *WasteRequestUseCase) Create(ctx context.Context, uid string, input CreateWasteRequestInput) (*entity.WasteRequest, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.Role != entity.RoleIndustrialist {
		return nil, errors.Forbidden("Only industrialists can create waste requests", nil)
	}
	if input.Quantity <= 0 {
		return nil, errors.BadRequest("Quantity must be greater than zero", nil)
	}

	request := &entity.WasteRequest{
		IndustrialistID:       uid,
		IndustrialistName:     profile.DisplayName,
		IndustrialistLocation: profile.Location,
		Type:                  input.Type,
		Quantity:              input.Quantity,
		Notes:                 input.Notes,
		Status:                entity.RequestStatusPending,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		logger.Error("Failed to create waste request for user %s: %v", uid, err)
		return nil, err
	}

	// Recyclers discover new requests through the pending-status query;
	// creation itself sends no notification.
	return request, nil
}

func (uc *WasteRequestUseCase) ListByStatus(ctx context.Context, requestStatus string, limit, offset int) ([]*entity.WasteRequest, int64, error) {
	return uc.requestRepo.ListByStatus(ctx, requestStatus, limit, offset)
}

func (uc *WasteRequestUseCase) ListMine(ctx context.Context, uid string, limit, offset int) ([]*entity.WasteRequest, int64, error) {
	return uc.requestRepo.ListByIndustrialist(ctx, uid, limit, offset)
}

func (uc *WasteRequestUseCase) GetByID(ctx context.Context, id string) (*entity.WasteRequest, error) {
	return uc.requestRepo.GetByID(ctx, id)
}

// Accept moves a pending request to accepted on behalf of a recycler. The
// acceptance notification comes from the change-feed trigger observing the
// committed transition, not from this path.
func (uc *WasteRequestUseCase) Accept(ctx context.Context, uid, requestID string) (*entity.WasteRequest, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.Role != entity.RoleRecycler {
		return nil, errors.Forbidden("Only recyclers can accept waste requests", nil)
	}

	updates := map[string]interface{}{
		"acceptedByRecyclerId": uid,
		"recyclerName":         profile.PublicName(),
	}

	request, err := uc.requestRepo.Transition(ctx, requestID, entity.RequestStatusPending, entity.RequestStatusAccepted, updates)
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return nil, errors.Conflict("Waste request has already been claimed", err)
		}
		return nil, err
	}

	logger.Info("Request %s accepted by recycler %s", requestID, uid)
	return request, nil
}

// Dispatch moves an accepted request to in-transit on behalf of a transporter.
func (uc *WasteRequestUseCase) Dispatch(ctx context.Context, uid, requestID string) (*entity.WasteRequest, error) {
	profile, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.Role != entity.RoleTransporter {
		return nil, errors.Forbidden("Only transporters can dispatch waste requests", nil)
	}

	updates := map[string]interface{}{
		"transportedById": uid,
		"transporterName": profile.DisplayName,
	}

	request, err := uc.requestRepo.Transition(ctx, requestID, entity.RequestStatusAccepted, entity.RequestStatusInTransit, updates)
	if err != nil {
		return nil, err
	}

	logger.Info("Request %s dispatched by transporter %s", requestID, uid)
	return request, nil
}

// Complete closes out an in-transit request. No trigger observes this
// transition, so it carries no notification side effect.
func (uc *WasteRequestUseCase) Complete(ctx context.Context, uid, requestID string) (*entity.WasteRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if uid != request.IndustrialistID && uid != request.AcceptedByRecyclerID {
		return nil, errors.Forbidden("Only the requesting industrialist or accepting recycler can complete a request", nil)
	}

	return uc.requestRepo.Transition(ctx, requestID, entity.RequestStatusInTransit, entity.RequestStatusCompleted, nil)
}

// Cancel moves any non-terminal request to cancelled. Owner only.
func (uc *WasteRequestUseCase) Cancel(ctx context.Context, uid, requestID string) (*entity.WasteRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.IndustrialistID != uid {
		return nil, errors.Forbidden("Only the requesting industrialist can cancel a request", nil)
	}
	if request.Terminal() {
		return nil, errors.Conflict("Waste request is already "+request.Status, nil)
	}

	return uc.requestRepo.Transition(ctx, requestID, request.Status, entity.RequestStatusCancelled, nil)
}
