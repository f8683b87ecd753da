package entity

import "time"

// Group is an addressable recipient set. Membership is managed by the group
// collaborator; the messaging core reads members and owns the per-member
// unread counters.
type Group struct {
	ID           string         `json:"id" firestore:"id"`
	Name         string         `json:"name" firestore:"name"`
	CreatorID    string         `json:"creator_id" firestore:"creatorId"`
	Members      []string       `json:"members" firestore:"members"`
	UnreadCounts map[string]int `json:"unread_counts" firestore:"unreadCounts"` // userID -> count
	CreatedAt    time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// HasMember reports whether userID is a current member.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
