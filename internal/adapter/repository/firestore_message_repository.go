package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"campuslink/internal/domain/entity"
	"campuslink/internal/domain/repository"
	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) CreateDirect(ctx context.Context, message *entity.DirectMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	message.Participants = []string{message.SenderID, message.ReceiverID}
	message.PairKey = entity.DirectPairKey(message.SenderID, message.ReceiverID)

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListDirectHistory(ctx context.Context, userA, userB string) ([]*entity.DirectMessage, error) {
	pairKey := entity.DirectPairKey(userA, userB)
	query := r.client.Collection("messages").
		Where("pairKey", "==", pairKey).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.DirectMessage

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating direct history %s: %v", pairKey, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.DirectMessage
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing message data for pair %s: %v", pairKey, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

// ListConversations fetches the user's direct messages newest-first and keeps
// the first message seen per counterpart, which is that conversation's latest.
func (r *firestoreMessageRepository) ListConversations(ctx context.Context, userID string) ([]*entity.DirectMessage, error) {
	query := r.client.Collection("messages").
		Where("participants", "array-contains", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching conversations for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	seen := make(map[string]bool)
	var latest []*entity.DirectMessage

	for _, doc := range docs {
		var message entity.DirectMessage
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}

		counterpart := message.Counterpart(userID)
		if seen[counterpart] {
			continue
		}
		seen[counterpart] = true
		latest = append(latest, &message)
	}

	return latest, nil
}

func (r *firestoreMessageRepository) CreateGroupMessage(ctx context.Context, message *entity.GroupMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("groups").Doc(message.GroupID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create group message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListGroupHistory(ctx context.Context, groupID string) ([]*entity.GroupMessage, error) {
	query := r.client.Collection("groups").Doc(groupID).Collection("messages").
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.GroupMessage

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating group history %s: %v", groupID, err)
			return nil, errors.Internal("Failed to iterate group messages", err)
		}

		var message entity.GroupMessage
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing group message data for group %s: %v", groupID, err)
			return nil, errors.Internal("Failed to parse group message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}
