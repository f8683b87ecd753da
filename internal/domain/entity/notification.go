package entity

import "time"

type NotificationType string

const (
	NotificationLike                  NotificationType = "like"
	NotificationComment               NotificationType = "comment"
	NotificationNewMessage            NotificationType = "new_message"
	NotificationNewGroupMessage       NotificationType = "new_group_message"
	NotificationFriendRequest         NotificationType = "friend_request"
	NotificationFriendRequestAccepted NotificationType = "friend_request_accepted"
	NotificationFriendRequestDeclined NotificationType = "friend_request_declined"
)

// Aggregatable reports whether repeated notifications with the same
// (recipient, type, relatedId) key merge into one unread record instead of
// piling up. Aggregation ends once the record is read; a viewed-but-unread
// record still aggregates.
func (t NotificationType) Aggregatable() bool {
	return t == NotificationFriendRequest || t == NotificationNewMessage
}

// Notification is a typed alert for a recipient. RelatedID identifies the
// acting counterpart per type: the sender for new_message, the requester for
// friend_request family, the group for new_group_message, the liker or
// commenter for like/comment. Only the fields relevant to the type are set.
type Notification struct {
	ID          string           `json:"id" firestore:"id"`
	RecipientID string           `json:"recipient_id" firestore:"recipientId"`
	Type        NotificationType `json:"type" firestore:"type"`
	RelatedID   string           `json:"related_id" firestore:"relatedId"`

	PostID    string `json:"post_id,omitempty" firestore:"postId,omitempty"`
	CommentID string `json:"comment_id,omitempty" firestore:"commentId,omitempty"`
	MessageID string `json:"message_id,omitempty" firestore:"messageId,omitempty"`

	Message string `json:"message" firestore:"message"`
	Count   int    `json:"count" firestore:"count"`
	Read    bool   `json:"read" firestore:"read"`
	Viewed  bool   `json:"viewed" firestore:"viewed"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
