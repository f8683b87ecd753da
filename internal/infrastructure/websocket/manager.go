package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"campuslink/pkg/logger"
)

// Client represents one live WebSocket connection bound to a user. A user may
// hold several clients at once (multiple tabs or devices).
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// MemberResolver supplies the current member set of a group. Membership is
// owned by the group collaborator; the manager only reads it to fan out.
type MemberResolver interface {
	Members(ctx context.Context, groupID string) ([]string, error)
}

// Manager is the live-connection registry and fan-out router. It holds no
// durable state: the table is rebuilt as clients reconnect after a restart,
// and the store remains authoritative for anything missed while offline.
type Manager struct {
	members MemberResolver

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewManager(members MemberResolver) *Manager {
	return &Manager{
		members: members,
		clients: make(map[string]map[*Client]struct{}),
	}
}

// Register binds a client to its user. Idempotent per client.
func (m *Manager) Register(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.clients[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		m.clients[client.UserID] = set
	}
	set[client] = struct{}{}
}

// Unregister removes the client from whatever user it was under. No-op if the
// client was never registered. The Send channel is closed here so WritePump
// terminates.
func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
}

// ConnectionsFor reports how many live connections the user currently has.
// Zero means offline, which is never an error.
func (m *Manager) ConnectionsFor(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID])
}

// PushToUser delivers the event to every live connection of the user,
// fire-and-forget. Events enqueued by one producing call preserve their order
// on each connection; a connection whose buffer is full is dropped rather
// than allowed to block the others. Offline users are a deliberate no-op: the
// record is already durable and history reconciliation covers it.
//
// Sends happen under the read lock. Unregister closes Send under the write
// lock, so a concurrent disconnect cannot close a channel mid-send.
func (m *Manager) PushToUser(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("websocket: failed to marshal %s event for user %s: %v", event.Type, userID, err)
		return
	}

	var slow []*Client

	m.mu.RLock()
	for client := range m.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("websocket: send buffer full for user %s, dropping connection", userID)
		m.Unregister(client)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

// PushToGroup resolves current membership and pushes the event to every
// member except excludeUserID (typically the sender, who already holds the
// authoritative response from its own request).
func (m *Manager) PushToGroup(ctx context.Context, groupID string, event Event, excludeUserID string) {
	memberIDs, err := m.members.Members(ctx, groupID)
	if err != nil {
		logger.Error("websocket: failed to resolve members of group %s: %v", groupID, err)
		return
	}

	for _, memberID := range memberIDs {
		if memberID == excludeUserID {
			continue
		}
		m.PushToUser(memberID, event)
	}
}

// ReadPump drains inbound frames until the connection closes, then
// unregisters the client. The realtime channel is push-only beyond the
// authenticated join; inbound frames are logged and discarded.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister(c)
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket: read error for user %s: %v", c.UserID, err)
			}
			break
		}
		logger.Debug("websocket: ignoring inbound frame from user %s: %s", c.UserID, string(message))
	}
}

// WritePump forwards queued events to the connection in FIFO order until the
// Send channel is closed by Unregister.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket: write error for user %s: %v", c.UserID, err)
			return
		}
	}
}
