package handler

import (
	"github.com/labstack/echo/v4"

	"campuslink/internal/usecase"
	"campuslink/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID := c.Get("uid").(string)

	notifications, err := h.notificationUseCase.List(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

// UnreadCount returns how many of the caller's notifications are unread.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.notificationUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"unread_count": count})
}

// MarkRead marks one notification read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	notification, err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, notificationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}

// MarkViewed marks one notification viewed without reading it.
func (h *NotificationHandler) MarkViewed(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	notification, err := h.notificationUseCase.MarkViewed(c.Request().Context(), userID, notificationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}

// MarkAllViewed marks every unviewed notification of the caller viewed.
func (h *NotificationHandler) MarkAllViewed(c echo.Context) error {
	userID := c.Get("uid").(string)

	updated, err := h.notificationUseCase.MarkAllViewed(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"updated": updated})
}

// Accept accepts a friend request notification.
func (h *NotificationHandler) Accept(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	if err := h.notificationUseCase.ResolveFriendRequest(c.Request().Context(), userID, notificationID, true); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "friend request accepted"})
}

// Decline declines a friend request notification.
func (h *NotificationHandler) Decline(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	if err := h.notificationUseCase.ResolveFriendRequest(c.Request().Context(), userID, notificationID, false); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "friend request declined"})
}

// AdminDelete removes any notification. Admin only.
func (h *NotificationHandler) AdminDelete(c echo.Context) error {
	notificationID := c.Param("id")

	if err := h.notificationUseCase.AdminDelete(c.Request().Context(), notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "notification deleted"})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	if err := h.notificationUseCase.Delete(c.Request().Context(), userID, notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "notification deleted"})
}
