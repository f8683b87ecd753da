package handler

import (
	"github.com/labstack/echo/v4"

	"campuslink/internal/usecase"
	"campuslink/pkg/errors"
	"campuslink/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	GroupID    string `json:"group_id"`
	Content    string `json:"content" validate:"required,max=4000"`
}

// SendMessage dispatches a direct or group message depending on which target
// the request names. Exactly one of receiver_id and group_id must be set.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if (req.ReceiverID == "") == (req.GroupID == "") {
		return response.Error(c, errors.BadRequest("Exactly one of receiver_id and group_id must be set", nil))
	}

	userID := c.Get("uid").(string)

	if req.GroupID != "" {
		message, err := h.messageUseCase.SendGroup(c.Request().Context(), userID, usecase.SendGroupInput{
			GroupID: req.GroupID,
			Content: req.Content,
		})
		if err != nil {
			return response.Error(c, err)
		}
		return response.Created(c, message)
	}

	message, err := h.messageUseCase.SendDirect(c.Request().Context(), userID, usecase.SendDirectInput{
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// GetConversations lists the caller's direct conversations, newest first.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.messageUseCase.GetConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// GetDirectHistory returns the full thread with another user.
func (h *MessageHandler) GetDirectHistory(c echo.Context) error {
	userID := c.Get("uid").(string)
	otherUserID := c.Param("userId")

	messages, err := h.messageUseCase.GetDirectHistory(c.Request().Context(), userID, otherUserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// GetGroupHistory returns a group's full thread. Members only.
func (h *MessageHandler) GetGroupHistory(c echo.Context) error {
	userID := c.Get("uid").(string)
	groupID := c.Param("groupId")

	messages, err := h.messageUseCase.GetGroupHistory(c.Request().Context(), userID, groupID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// ResetUnread zeroes the caller's unread counter for a group.
func (h *MessageHandler) ResetUnread(c echo.Context) error {
	userID := c.Get("uid").(string)
	groupID := c.Param("id")

	if err := h.messageUseCase.ResetUnread(c.Request().Context(), userID, groupID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "unread counter reset"})
}
