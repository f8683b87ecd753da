package usecase

import (
	"context"

	"campuslink/internal/domain/entity"
)

// Notifier dispatches a typed notification to a recipient. Implemented by
// NotificationUseCase; declared here so MessageUseCase can trigger
// notifications without a hard dependency.
type Notifier interface {
	Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error)
}

// RelationshipService applies the side effects of resolving a friend request:
// accepting links the two users, declining discards the request. Backed by
// the acquaintance service.
type RelationshipService interface {
	Accept(ctx context.Context, requesterID, recipientID string) error
	Decline(ctx context.Context, requesterID, recipientID string) error
}
