package service

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

// AcquaintanceService applies friend-request outcomes to the user store.
// Accepting links both users by adding each to the other's acquaintances
// array; declining just discards the pending request. The pending request
// document lives under friendRequests with a deterministic id so repeat
// requests overwrite rather than pile up.
type AcquaintanceService struct {
	client *firestore.Client
}

func NewAcquaintanceService(client *firestore.Client) *AcquaintanceService {
	return &AcquaintanceService{
		client: client,
	}
}

func requestDocID(requesterID, recipientID string) string {
	return requesterID + "_" + recipientID
}

func (s *AcquaintanceService) Accept(ctx context.Context, requesterID, recipientID string) error {
	users := s.client.Collection("users")

	batch := s.client.Batch()
	batch.Update(users.Doc(requesterID), []firestore.Update{
		{Path: "acquaintances", Value: firestore.ArrayUnion(recipientID)},
	})
	batch.Update(users.Doc(recipientID), []firestore.Update{
		{Path: "acquaintances", Value: firestore.ArrayUnion(requesterID)},
	})
	batch.Delete(s.client.Collection("friendRequests").Doc(requestDocID(requesterID, recipientID)))

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to link acquaintances", err)
	}

	logger.Info("Linked acquaintances %s and %s", requesterID, recipientID)
	return nil
}

func (s *AcquaintanceService) Decline(ctx context.Context, requesterID, recipientID string) error {
	_, err := s.client.Collection("friendRequests").Doc(requestDocID(requesterID, recipientID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to discard friend request", err)
	}

	return nil
}
