package websocket

import (
	"encoding/json"

	"econexus/internal/domain/entity"
	"econexus/pkg/logger"
)

// Notifier marshals push events into the wire envelope the dashboard
// subscribes to. All pushes are best effort.
type Notifier struct {
	manager *Manager
}

func NewNotifier(manager *Manager) *Notifier {
	return &Notifier{manager: manager}
}

func (n *Notifier) PublishNotification(userID string, notification *entity.Notification) {
	n.send(userID, map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})
}

func (n *Notifier) PublishMessage(userID string, message *entity.Message) {
	n.send(userID, map[string]interface{}{
		"type":            "new_message",
		"conversation_id": message.ConversationID,
		"message":         message,
	})
}

func (n *Notifier) PublishConversationUpdate(userID string, conversation *entity.Conversation) {
	n.send(userID, map[string]interface{}{
		"type":         "conversation_update",
		"conversation": conversation,
	})
}

func (n *Notifier) send(userID string, event map[string]interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal websocket event: %v", err)
		return
	}
	n.manager.SendToUser(userID, payload)
}
