package entity

import (
	"sort"
	"strings"
	"time"
)

// DirectMessage is a one-to-one message. Immutable once created; visible to
// sender and receiver only.
type DirectMessage struct {
	ID         string    `json:"id" firestore:"id"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Content    string    `json:"content" firestore:"content"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`

	// Participants and PairKey are derived query fields maintained by the
	// repository so a conversation can be fetched with a single query.
	Participants []string `json:"-" firestore:"participants"`
	PairKey      string   `json:"-" firestore:"pairKey"`
}

// GroupMessage is a message posted to a group; visible to all current members.
type GroupMessage struct {
	ID        string    `json:"id" firestore:"id"`
	GroupID   string    `json:"group_id" firestore:"groupId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// DirectPairKey returns the canonical key identifying the conversation between
// two users, independent of who sent first.
func DirectPairKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}

// Counterpart returns the other participant of a direct message from the
// point of view of userID.
func (m *DirectMessage) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
