package repository

import (
	"context"

	"campuslink/internal/domain/entity"
)

type MessageRepository interface {
	CreateDirect(ctx context.Context, message *entity.DirectMessage) error

	// ListConversations returns the latest direct message per distinct
	// counterpart of userID, ordered by recency descending.
	ListConversations(ctx context.Context, userID string) ([]*entity.DirectMessage, error)

	// ListDirectHistory returns every direct message between the two users,
	// ascending by createdAt.
	ListDirectHistory(ctx context.Context, userA, userB string) ([]*entity.DirectMessage, error)

	CreateGroupMessage(ctx context.Context, message *entity.GroupMessage) error

	// ListGroupHistory returns every message of the group, ascending by
	// createdAt.
	ListGroupHistory(ctx context.Context, groupID string) ([]*entity.GroupMessage, error)
}
