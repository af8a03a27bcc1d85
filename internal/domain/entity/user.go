package entity

import "time"

const (
	RoleIndustrialist = "Industrialist"
	RoleRecycler      = "Recycler"
	RoleTransporter   = "Transporter"
)

type UserProfile struct {
	UID         string `json:"uid" firestore:"uid"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Role        string `json:"role" firestore:"role"` // "Industrialist", "Recycler", "Transporter"
	Location    string `json:"location,omitempty" firestore:"location,omitempty"`

	// Recycler-only fields
	PlantName string   `json:"plant_name,omitempty" firestore:"plantName,omitempty"`
	Materials []string `json:"materials,omitempty" firestore:"materials,omitempty"`

	// Transporter-only fields
	VehicleTypes []string `json:"vehicle_types,omitempty" firestore:"vehicleTypes,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleIndustrialist, RoleRecycler, RoleTransporter:
		return true
	}
	return false
}

// PublicName is the name other users see for this profile. Recyclers are
// identified by their plant name when they have one.
func (u *UserProfile) PublicName() string {
	if u.PlantName != "" {
		return u.PlantName
	}
	return u.DisplayName
}
