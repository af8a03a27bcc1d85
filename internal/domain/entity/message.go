package entity

import "time"

type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Text           string    `json:"text" firestore:"text"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
