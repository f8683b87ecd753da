package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticMembers struct {
	members map[string][]string
}

func (s *staticMembers) Members(ctx context.Context, groupID string) ([]string, error) {
	members, ok := s.members[groupID]
	if !ok {
		return nil, errors.New("unknown group")
	}
	return members, nil
}

func newTestManager(groups map[string][]string) *Manager {
	return NewManager(&staticMembers{members: groups})
}

func newTestClient(userID string, buffer int) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
}

func decode(t *testing.T, payload []byte) Event {
	t.Helper()
	var event Event
	assert.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func TestRegisterTracksMultipleConnections(t *testing.T) {
	m := newTestManager(nil)

	first := newTestClient("alice", 8)
	second := newTestClient("alice", 8)

	m.Register(first)
	m.Register(first) // idempotent
	m.Register(second)

	assert.Equal(t, 2, m.ConnectionsFor("alice"))
	assert.Equal(t, 0, m.ConnectionsFor("bob"))

	m.Unregister(first)
	assert.Equal(t, 1, m.ConnectionsFor("alice"))
}

func TestUnregisterClosesSendOnce(t *testing.T) {
	m := newTestManager(nil)
	client := newTestClient("alice", 8)
	m.Register(client)

	m.Unregister(client)
	m.Unregister(client) // no-op, must not close twice

	_, open := <-client.Send
	assert.False(t, open)
}

func TestPushToUserDeliversToEveryConnection(t *testing.T) {
	m := newTestManager(nil)

	first := newTestClient("alice", 8)
	second := newTestClient("alice", 8)
	other := newTestClient("bob", 8)
	m.Register(first)
	m.Register(second)
	m.Register(other)

	m.PushToUser("alice", NewEvent(EventNewNotification, map[string]string{"id": "n1"}))

	for _, client := range []*Client{first, second} {
		select {
		case payload := <-client.Send:
			assert.Equal(t, EventNewNotification, decode(t, payload).Type)
		default:
			t.Fatal("expected a frame on every alice connection")
		}
	}
	assert.Empty(t, other.Send)
}

func TestPushToUserOfflineIsNoop(t *testing.T) {
	m := newTestManager(nil)

	// No registered connections: must not error or panic.
	m.PushToUser("ghost", NewEvent(EventReceiveMessage, map[string]string{"id": "m1"}))
	assert.Equal(t, 0, m.ConnectionsFor("ghost"))
}

func TestPushToUserPreservesOrder(t *testing.T) {
	m := newTestManager(nil)
	client := newTestClient("alice", 8)
	m.Register(client)

	m.PushToUser("alice", NewEvent(EventReceiveMessage, map[string]string{"seq": "1"}))
	m.PushToUser("alice", NewEvent(EventNewNotification, map[string]string{"seq": "2"}))
	m.PushToUser("alice", NewEvent(EventNotificationRead, map[string]string{"seq": "3"}))

	want := []string{EventReceiveMessage, EventNewNotification, EventNotificationRead}
	for _, expected := range want {
		payload := <-client.Send
		assert.Equal(t, expected, decode(t, payload).Type)
	}
}

func TestPushToUserDropsSlowConnection(t *testing.T) {
	m := newTestManager(nil)

	slow := newTestClient("alice", 1)
	healthy := newTestClient("alice", 8)
	m.Register(slow)
	m.Register(healthy)

	// Fill the slow connection's buffer, then push once more.
	m.PushToUser("alice", NewEvent(EventReceiveMessage, map[string]string{"seq": "1"}))
	m.PushToUser("alice", NewEvent(EventReceiveMessage, map[string]string{"seq": "2"}))

	// The slow connection was dropped; the healthy one got both frames.
	assert.Equal(t, 1, m.ConnectionsFor("alice"))
	assert.Len(t, healthy.Send, 2)
}

func TestPushWhileClientsDisconnect(t *testing.T) {
	m := newTestManager(nil)

	// Pushes racing with disconnects must never hit a closed Send channel.
	for i := 0; i < 50; i++ {
		clients := make([]*Client, 20)
		for j := range clients {
			clients[j] = newTestClient("alice", 1)
			m.Register(clients[j])
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 10; k++ {
				m.PushToUser("alice", NewEvent(EventNewNotification, map[string]string{"id": "n1"}))
			}
		}()
		for _, client := range clients {
			wg.Add(1)
			go func(c *Client) {
				defer wg.Done()
				m.Unregister(c)
			}(client)
		}
		wg.Wait()
	}

	assert.Equal(t, 0, m.ConnectionsFor("alice"))
}

func TestPushToGroupExcludesSender(t *testing.T) {
	m := newTestManager(map[string][]string{
		"g1": {"alice", "bob", "carol"},
	})

	alice := newTestClient("alice", 8)
	bob := newTestClient("bob", 8)
	m.Register(alice)
	m.Register(bob)
	// carol is offline.

	m.PushToGroup(context.Background(), "g1", NewEvent(EventReceiveMessage, map[string]string{"id": "m1"}), "alice")

	assert.Empty(t, alice.Send)
	assert.Len(t, bob.Send, 1)
}

func TestPushToGroupResolverFailure(t *testing.T) {
	m := newTestManager(nil)
	client := newTestClient("alice", 8)
	m.Register(client)

	// Unknown group: fan-out is skipped, nothing pushed, no panic.
	m.PushToGroup(context.Background(), "missing", NewEvent(EventReceiveMessage, nil), "")
	assert.Empty(t, client.Send)
}
