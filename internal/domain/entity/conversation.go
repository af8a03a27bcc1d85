package entity

import "time"

// ParticipantProfile is the snapshot of a participant captured when the
// conversation is created. It is not kept in sync with later profile edits.
type ParticipantProfile struct {
	DisplayName string `json:"display_name" firestore:"displayName"`
	PlantName   string `json:"plant_name,omitempty" firestore:"plantName,omitempty"`
	Role        string `json:"role" firestore:"role"`
}

type LastMessage struct {
	Text      string    `json:"text" firestore:"text"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type Conversation struct {
	ID                  string                        `json:"id" firestore:"id"`
	Participants        []string                      `json:"participants" firestore:"participants"` // exactly two, sorted
	ParticipantProfiles map[string]ParticipantProfile `json:"participant_profiles" firestore:"participantProfiles"`
	LastMessage         *LastMessage                  `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	UnreadCounts        map[string]int                `json:"unread_counts" firestore:"unreadCounts"`
	CreatedAt           time.Time                     `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time                     `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether uid is one of the two conversation members.
func (c *Conversation) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// OtherParticipant returns the member that is not uid, or "" if uid is not
// a participant.
func (c *Conversation) OtherParticipant(uid string) string {
	for _, p := range c.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}
