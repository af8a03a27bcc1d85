package entity

import "time"

const (
	MaterialStatusAvailable = "available"
	MaterialStatusSold      = "sold"
)

type RecycledMaterial struct {
	ID         string    `json:"id" firestore:"id"`
	RecyclerID string    `json:"recycler_id" firestore:"recyclerId"`
	Type       string    `json:"type" firestore:"type"`
	Quantity   float64   `json:"quantity" firestore:"quantity"` // in kg
	Price      float64   `json:"price" firestore:"price"`       // per kg
	Status     string    `json:"status" firestore:"status"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
