package repository

import (
	"context"

	"campuslink/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)

	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]*entity.Notification, error)

	// FindUnreadByKey looks up the recipient's unread notification with the
	// given aggregation key (type, relatedId). Returns NotFound when none
	// exists.
	FindUnreadByKey(ctx context.Context, recipientID string, notificationType entity.NotificationType, relatedID string) (*entity.Notification, error)

	Update(ctx context.Context, notification *entity.Notification) error

	// MarkAllViewed sets viewed=true on every unviewed notification of the
	// recipient and reports how many records changed.
	MarkAllViewed(ctx context.Context, recipientID string) (int, error)

	CountUnread(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
