package repository

import (
	"context"

	"campuslink/internal/domain/entity"
)

type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Group, error)

	// Members resolves the current member set; membership itself is owned by
	// the external group collaborator.
	Members(ctx context.Context, groupID string) ([]string, error)

	// IncrementUnread adds 1 to the unread counter of every member except
	// senderID. Must be atomic with respect to concurrent sends to the same
	// group.
	IncrementUnread(ctx context.Context, groupID, senderID string) error

	// ResetUnread sets the member's unread counter to 0. Idempotent.
	ResetUnread(ctx context.Context, groupID, userID string) error
}
