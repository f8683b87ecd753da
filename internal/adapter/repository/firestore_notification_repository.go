package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campuslink/internal/domain/entity"
	"campuslink/internal/domain/repository"
	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.Count == 0 {
		notification.Count = 1
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &notification, nil
}

func (r *firestoreNotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*entity.Notification, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating notifications for %s: %v", recipientID, err)
			return nil, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			logger.Warn("Skipping malformed notification document %s: %v", doc.Ref.ID, err)
			continue
		}

		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) FindUnreadByKey(ctx context.Context, recipientID string, notificationType entity.NotificationType, relatedID string) (*entity.Notification, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("type", "==", string(notificationType)).
		Where("relatedId", "==", relatedID).
		Where("read", "==", false).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Notification", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query notification by key", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &notification, nil
}

func (r *firestoreNotificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to update notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkAllViewed(ctx context.Context, recipientID string) (int, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("viewed", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query unviewed notifications", err)
	}

	updated := 0
	for _, doc := range docs {
		_, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "viewed", Value: true}})
		if err != nil {
			return updated, errors.Internal("Failed to mark notification viewed", err)
		}
		updated++
	}

	return updated, nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	query := r.client.Collection("notifications").
		Where("recipientId", "==", recipientID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreNotificationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete notification", err)
	}

	return nil
}
