package usecase

import (
	"context"
	"fmt"
	"time"

	"campuslink/internal/domain/entity"
	"campuslink/internal/domain/repository"
	ws "campuslink/internal/infrastructure/websocket"
	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	relationships    RelationshipService
	wsManager        *ws.Manager
	aggregationLocks *keyedMutex
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	relationships RelationshipService,
	wsManager *ws.Manager,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		relationships:    relationships,
		wsManager:        wsManager,
		aggregationLocks: newKeyedMutex(),
	}
}

type NotifyInput struct {
	RecipientID string
	Type        entity.NotificationType
	RelatedID   string
	PostID      string
	CommentID   string
	MessageID   string
	Message     string
}

// Notify persists a notification for the recipient and pushes it to their
// live connections. For aggregatable types an existing unread record with the
// same (type, relatedId) key is bumped instead of a new one being created;
// only marking the record read ends aggregation, so a viewed-but-unread
// record still absorbs repeats.
func (uc *NotificationUseCase) Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error) {
	if input.Type.Aggregatable() {
		unlock := uc.aggregationLocks.Lock(input.RecipientID + "|" + string(input.Type) + "|" + input.RelatedID)
		defer unlock()

		existing, err := uc.notificationRepo.FindUnreadByKey(ctx, input.RecipientID, input.Type, input.RelatedID)
		if err == nil {
			existing.Count++
			existing.Viewed = false
			existing.Message = input.Message
			existing.MessageID = input.MessageID
			existing.CreatedAt = time.Now()
			if err := uc.notificationRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			uc.wsManager.PushToUser(existing.RecipientID, ws.NewEvent(ws.EventNewNotification, existing))
			return existing, nil
		}
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}

	notification := &entity.Notification{
		RecipientID: input.RecipientID,
		Type:        input.Type,
		RelatedID:   input.RelatedID,
		PostID:      input.PostID,
		CommentID:   input.CommentID,
		MessageID:   input.MessageID,
		Message:     input.Message,
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	uc.wsManager.PushToUser(notification.RecipientID, ws.NewEvent(ws.EventNewNotification, notification))

	return notification, nil
}

// List returns the caller's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return uc.notificationRepo.ListByRecipient(ctx, userID)
}

// UnreadCount reports how many of the caller's notifications are unread.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks the notification read. Idempotent: a second call is a no-op
// and pushes nothing. Reading ends aggregation for the record's key. The
// viewed flag is independent and untouched here.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.ownedNotification(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.Read {
		return notification, nil
	}

	notification.Read = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}

	uc.wsManager.PushToUser(userID, ws.NewEvent(ws.EventNotificationRead, ws.NotificationStateData{
		NotificationID: notification.ID,
	}))

	return notification, nil
}

// MarkViewed marks the notification viewed without reading it; the record
// keeps aggregating until read.
func (uc *NotificationUseCase) MarkViewed(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.ownedNotification(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.Viewed {
		return notification, nil
	}

	notification.Viewed = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}

	uc.wsManager.PushToUser(userID, ws.NewEvent(ws.EventNotificationViewed, ws.NotificationStateData{
		NotificationID: notification.ID,
	}))

	return notification, nil
}

// MarkAllViewed marks every unviewed notification of the caller viewed and
// pushes a single bulk event rather than one per record.
func (uc *NotificationUseCase) MarkAllViewed(ctx context.Context, userID string) (int, error) {
	updated, err := uc.notificationRepo.MarkAllViewed(ctx, userID)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		uc.wsManager.PushToUser(userID, ws.NewEvent(ws.EventNotificationViewed, ws.NotificationsViewedData{
			All:     true,
			Updated: updated,
		}))
	}

	return updated, nil
}

// Delete removes the caller's notification and echoes the deletion to their
// live connections.
func (uc *NotificationUseCase) Delete(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.ownedNotification(ctx, userID, notificationID)
	if err != nil {
		return err
	}

	if err := uc.notificationRepo.Delete(ctx, notification.ID); err != nil {
		return err
	}

	uc.wsManager.PushToUser(userID, ws.NewEvent(ws.EventNotificationDeleted, ws.NotificationStateData{
		NotificationID: notification.ID,
	}))

	return nil
}

// AdminDelete removes any user's notification, bypassing the ownership
// check. The recipient still gets the deletion echoed so open clients drop
// the record.
func (uc *NotificationUseCase) AdminDelete(ctx context.Context, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if err := uc.notificationRepo.Delete(ctx, notification.ID); err != nil {
		return err
	}

	uc.wsManager.PushToUser(notification.RecipientID, ws.NewEvent(ws.EventNotificationDeleted, ws.NotificationStateData{
		NotificationID: notification.ID,
	}))

	return nil
}

// ResolveFriendRequest accepts or declines a friend_request notification.
// The request record is marked read either way, the relationship side effect
// runs, and the requester is notified of the outcome.
func (uc *NotificationUseCase) ResolveFriendRequest(ctx context.Context, userID, notificationID string, accept bool) error {
	notification, err := uc.ownedNotification(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if notification.Type != entity.NotificationFriendRequest {
		return errors.BadRequest("Notification is not a friend request", nil)
	}
	if notification.Read {
		return errors.BadRequest("Friend request already resolved", nil)
	}

	requesterID := notification.RelatedID

	if accept {
		err = uc.relationships.Accept(ctx, requesterID, userID)
	} else {
		err = uc.relationships.Decline(ctx, requesterID, userID)
	}
	if err != nil {
		return err
	}

	notification.Read = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return err
	}
	uc.wsManager.PushToUser(userID, ws.NewEvent(ws.EventNotificationRead, ws.NotificationStateData{
		NotificationID: notification.ID,
	}))

	recipient, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	outcomeType := entity.NotificationFriendRequestAccepted
	outcomeMessage := fmt.Sprintf("%s accepted your friend request", recipient.Name)
	if !accept {
		outcomeType = entity.NotificationFriendRequestDeclined
		outcomeMessage = fmt.Sprintf("%s declined your friend request", recipient.Name)
	}

	_, err = uc.Notify(ctx, NotifyInput{
		RecipientID: requesterID,
		Type:        outcomeType,
		RelatedID:   userID,
		Message:     outcomeMessage,
	})
	if err != nil {
		logger.Error("ResolveFriendRequest: failed to notify requester %s: %v", requesterID, err)
	}

	return nil
}

func (uc *NotificationUseCase) ownedNotification(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != userID {
		return nil, errors.Forbidden("Notification belongs to another user", nil)
	}
	return notification, nil
}
