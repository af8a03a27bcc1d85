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

type firestoreWasteRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreWasteRequestRepository(client *firestore.Client) repository.WasteRequestRepository {
	return &firestoreWasteRequestRepository{
		client: client,
	}
}

func (r *firestoreWasteRequestRepository) Create(ctx context.Context, request *entity.WasteRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()

	_, err := r.client.Collection("wasteRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create waste request", err)
	}
	return nil
}

func (r *firestoreWasteRequestRepository) GetByID(ctx context.Context, id string) (*entity.WasteRequest, error) {
	doc, err := r.client.Collection("wasteRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Waste request", err)
		}
		return nil, errors.Internal("Failed to get waste request", err)
	}

	var request entity.WasteRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse waste request data", err)
	}
	request.ID = doc.Ref.ID

	return &request, nil
}

func (r *firestoreWasteRequestRepository) ListByStatus(ctx context.Context, requestStatus string, limit, offset int) ([]*entity.WasteRequest, int64, error) {
	query := r.client.Collection("wasteRequests").
		Where("status", "==", requestStatus).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreWasteRequestRepository) ListByIndustrialist(ctx context.Context, industrialistID string, limit, offset int) ([]*entity.WasteRequest, int64, error) {
	query := r.client.Collection("wasteRequests").
		Where("industrialistId", "==", industrialistID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query, limit, offset)
}

func (r *firestoreWasteRequestRepository) list(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.WasteRequest, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count waste requests", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var requests []*entity.WasteRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate waste requests", err)
		}

		var request entity.WasteRequest
		if err := doc.DataTo(&request); err != nil {
			continue // skip malformed documents
		}
		request.ID = doc.Ref.ID
		requests = append(requests, &request)
	}

	return requests, total, nil
}

func (r *firestoreWasteRequestRepository) Transition(ctx context.Context, id, fromStatus, toStatus string, updates map[string]interface{}) (*entity.WasteRequest, error) {
	docRef := r.client.Collection("wasteRequests").Doc(id)
	var updated entity.WasteRequest

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Waste request", err)
			}
			return errors.Internal("Failed to get waste request", err)
		}

		var current entity.WasteRequest
		if err := doc.DataTo(&current); err != nil {
			return errors.Internal("Failed to parse waste request data", err)
		}
		current.ID = doc.Ref.ID

		if current.Status != fromStatus {
			return errors.Conflict("Waste request is no longer "+fromStatus, nil)
		}

		fieldUpdates := []firestore.Update{
			{Path: "status", Value: toStatus},
			{Path: "updatedAt", Value: time.Now()},
		}
		for path, value := range updates {
			fieldUpdates = append(fieldUpdates, firestore.Update{Path: path, Value: value})
		}

		if err := tx.Update(docRef, fieldUpdates); err != nil {
			return errors.Internal("Failed to update waste request", err)
		}

		updated = current
		updated.Status = toStatus
		updated.UpdatedAt = time.Now()
		applyKnownFields(&updated, updates)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func applyKnownFields(request *entity.WasteRequest, updates map[string]interface{}) {
	for path, value := range updates {
		strVal, ok := value.(string)
		if !ok {
			continue
		}
		switch path {
		case "acceptedByRecyclerId":
			request.AcceptedByRecyclerID = strVal
		case "recyclerName":
			request.RecyclerName = strVal
		case "transportedById":
			request.TransportedByID = strVal
		case "transporterName":
			request.TransporterName = strVal
		}
	}
}
