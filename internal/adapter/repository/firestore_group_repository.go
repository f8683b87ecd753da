package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campuslink/internal/domain/entity"
	"campuslink/internal/domain/repository"
	"campuslink/pkg/errors"
)

type firestoreGroupRepository struct {
	client *firestore.Client
}

func NewFirestoreGroupRepository(client *firestore.Client) repository.GroupRepository {
	return &firestoreGroupRepository{
		client: client,
	}
}

func (r *firestoreGroupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	doc, err := r.client.Collection("groups").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Group", err)
		}
		return nil, errors.Internal("Failed to get group", err)
	}

	var group entity.Group
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse group data", err)
	}
	group.ID = doc.Ref.ID

	return &group, nil
}

func (r *firestoreGroupRepository) Members(ctx context.Context, groupID string) ([]string, error) {
	group, err := r.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

// IncrementUnread runs in a transaction so two messages sent to the same
// group at the same time both land in every member's counter.
func (r *firestoreGroupRepository) IncrementUnread(ctx context.Context, groupID, senderID string) error {
	ref := r.client.Collection("groups").Doc(groupID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			return err
		}

		if group.UnreadCounts == nil {
			group.UnreadCounts = make(map[string]int)
		}
		for _, memberID := range group.Members {
			if memberID != senderID {
				group.UnreadCounts[memberID]++
			}
		}
		group.UpdatedAt = time.Now()

		return tx.Set(ref, &group)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Group", err)
		}
		return errors.Internal("Failed to increment unread counters", err)
	}

	return nil
}

func (r *firestoreGroupRepository) ResetUnread(ctx context.Context, groupID, userID string) error {
	ref := r.client.Collection("groups").Doc(groupID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var group entity.Group
		if err := doc.DataTo(&group); err != nil {
			return err
		}

		if group.UnreadCounts == nil {
			group.UnreadCounts = make(map[string]int)
		}
		group.UnreadCounts[userID] = 0

		return tx.Set(ref, &group)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Group", err)
		}
		return errors.Internal("Failed to reset unread counter", err)
	}

	return nil
}
