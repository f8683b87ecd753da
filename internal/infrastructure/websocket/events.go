package websocket

import "time"

// Realtime event types pushed to clients.
const (
	EventReceiveMessage      = "receiveMessage"
	EventNewNotification     = "newNotification"
	EventNotificationRead    = "notificationRead"
	EventNotificationViewed  = "notificationViewed"
	EventNotificationDeleted = "notificationDeleted"
)

// Event is the envelope for every frame pushed over a live connection. Data
// carries a typed payload per event type: a message entity for
// receiveMessage, a notification entity for newNotification, and the *Data
// structs below for the state-change events.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NotificationStateData identifies the notification a notificationRead,
// notificationViewed or notificationDeleted event refers to.
type NotificationStateData struct {
	NotificationID string `json:"notification_id"`
}

// NotificationsViewedData summarizes a bulk mark-all-viewed change.
type NotificationsViewedData struct {
	All     bool `json:"all"`
	Updated int  `json:"updated"`
}
