package entity

import "time"

const (
	RequestStatusPending   = "pending"
	RequestStatusAccepted  = "accepted"
	RequestStatusInTransit = "in-transit"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

type WasteRequest struct {
	ID                     string    `json:"id" firestore:"id"`
	IndustrialistID        string    `json:"industrialist_id" firestore:"industrialistId"`
	IndustrialistName      string    `json:"industrialist_name" firestore:"industrialistName"`
	IndustrialistLocation  string    `json:"industrialist_location,omitempty" firestore:"industrialistLocation,omitempty"`
	Type                   string    `json:"type" firestore:"type"`
	Quantity               float64   `json:"quantity" firestore:"quantity"` // in kg
	Notes                  string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	Status                 string    `json:"status" firestore:"status"`
	AcceptedByRecyclerID   string    `json:"accepted_by_recycler_id,omitempty" firestore:"acceptedByRecyclerId,omitempty"`
	RecyclerName           string    `json:"recycler_name,omitempty" firestore:"recyclerName,omitempty"`
	TransportedByID        string    `json:"transported_by_id,omitempty" firestore:"transportedById,omitempty"`
	TransporterName        string    `json:"transporter_name,omitempty" firestore:"transporterName,omitempty"`
	CreatedAt              time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt              time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

// Terminal reports whether no further status transition is allowed.
func (w *WasteRequest) Terminal() bool {
	return w.Status == RequestStatusCompleted || w.Status == RequestStatusCancelled
}
