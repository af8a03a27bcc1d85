package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"econexus/pkg/logger"
)

// Client is one live subscription: a user's open websocket connection.
// Closing the page tears the client down, which is the unsubscribe.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager owns all active connections and routes per-user pushes.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok {
					// Reconnect replaces the old connection.
					close(old.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser pushes a message to one connected user. Users without an open
// connection are skipped; they will read the backing documents on next load.
//
// The send happens under the read lock so it can never race the manager
// loop's close of the channel. Only the manager loop ever closes Send.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	if !ok {
		m.mutex.RUnlock()
		logger.Debug("No active connection for user %s, skipping push", userID)
		return
	}

	select {
	case client.Send <- message:
		m.mutex.RUnlock()
	default:
		// Slow consumer, drop the connection rather than block the caller.
		// The manager loop owns the close; concurrent drops of the same
		// client collapse into one unregister.
		m.mutex.RUnlock()
		m.Unregister <- client
	}
}

// ReadPump drains inbound frames until the connection drops.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Websocket write error: %v", err)
			return
		}
	}
}
