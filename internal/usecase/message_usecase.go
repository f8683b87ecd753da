package usecase

import (
	"context"
	"fmt"
	"strings"

	"campuslink/internal/domain/entity"
	"campuslink/internal/domain/repository"
	"campuslink/internal/infrastructure/ratelimit"
	ws "campuslink/internal/infrastructure/websocket"
	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	wsManager *ws.Manager,
) *MessageUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &MessageUseCase{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type SendDirectInput struct {
	ReceiverID string
	Content    string
}

type SendGroupInput struct {
	GroupID string
	Content string
}

// ConversationResponse pairs a counterpart with the most recent message
// exchanged with them.
type ConversationResponse struct {
	Acquaintance  *entity.User          `json:"acquaintance"`
	LatestMessage *entity.DirectMessage `json:"latest_message"`
}

// SendDirect persists a one-to-one message, pushes it to the receiver's live
// connections and dispatches a new_message notification. The message is
// durable before any push happens; an offline receiver simply gets nothing
// pushed and reconciles from history later.
func (uc *MessageUseCase) SendDirect(ctx context.Context, senderID string, input SendDirectInput) (*entity.DirectMessage, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("SendDirect rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}
	if senderID == input.ReceiverID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	message := &entity.DirectMessage{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}
	if err := uc.messageRepo.CreateDirect(ctx, message); err != nil {
		return nil, err
	}

	uc.wsManager.PushToUser(input.ReceiverID, ws.NewEvent(ws.EventReceiveMessage, message))

	_, err = uc.notifier.Notify(ctx, NotifyInput{
		RecipientID: input.ReceiverID,
		Type:        entity.NotificationNewMessage,
		RelatedID:   senderID,
		MessageID:   message.ID,
		Message:     fmt.Sprintf("New message from %s", sender.Name),
	})
	if err != nil {
		logger.Error("SendDirect: failed to dispatch notification for message %s: %v", message.ID, err)
	}

	return message, nil
}

// SendGroup persists a group message, bumps every other member's unread
// counter, then fans the message out to members' live connections and
// notifies them.
func (uc *MessageUseCase) SendGroup(ctx context.Context, senderID string, input SendGroupInput) (*entity.GroupMessage, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("SendGroup rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}

	group, err := uc.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(senderID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	message := &entity.GroupMessage{
		GroupID:  input.GroupID,
		SenderID: senderID,
		Content:  input.Content,
	}
	if err := uc.messageRepo.CreateGroupMessage(ctx, message); err != nil {
		return nil, err
	}

	// Counters are part of the durable write; a failed bump fails the send
	// before anything is pushed.
	if err := uc.groupRepo.IncrementUnread(ctx, input.GroupID, senderID); err != nil {
		return nil, err
	}

	uc.wsManager.PushToGroup(ctx, input.GroupID, ws.NewEvent(ws.EventReceiveMessage, message), senderID)

	for _, memberID := range group.Members {
		if memberID == senderID {
			continue
		}
		_, err := uc.notifier.Notify(ctx, NotifyInput{
			RecipientID: memberID,
			Type:        entity.NotificationNewGroupMessage,
			RelatedID:   input.GroupID,
			MessageID:   message.ID,
			Message:     fmt.Sprintf("%s posted in %s", sender.Name, group.Name),
		})
		if err != nil {
			logger.Error("SendGroup: failed to notify member %s for message %s: %v", memberID, message.ID, err)
		}
	}

	return message, nil
}

// ResetUnread zeroes the caller's unread counter for the group, typically
// when they open it. Idempotent.
func (uc *MessageUseCase) ResetUnread(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return errors.Forbidden("You are not a member of this group", nil)
	}

	return uc.groupRepo.ResetUnread(ctx, groupID, userID)
}

// GetConversations returns the caller's direct conversations, newest first,
// each carrying the counterpart's profile and the latest message.
func (uc *MessageUseCase) GetConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	latest, err := uc.messageRepo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]*ConversationResponse, 0, len(latest))
	for _, message := range latest {
		counterpart, err := uc.userRepo.GetByID(ctx, message.Counterpart(userID))
		if err != nil {
			logger.Warn("GetConversations: skipping conversation with unknown user %s: %v", message.Counterpart(userID), err)
			continue
		}
		conversations = append(conversations, &ConversationResponse{
			Acquaintance:  counterpart,
			LatestMessage: message,
		})
	}

	return conversations, nil
}

// GetDirectHistory returns the full thread between the caller and the other
// user, oldest first.
func (uc *MessageUseCase) GetDirectHistory(ctx context.Context, userID, otherUserID string) ([]*entity.DirectMessage, error) {
	if _, err := uc.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	return uc.messageRepo.ListDirectHistory(ctx, userID, otherUserID)
}

// GetGroupHistory returns the group's full thread, oldest first. Members only.
func (uc *MessageUseCase) GetGroupHistory(ctx context.Context, userID, groupID string) ([]*entity.GroupMessage, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, errors.Forbidden("You are not a member of this group", nil)
	}

	return uc.messageRepo.ListGroupHistory(ctx, groupID)
}
