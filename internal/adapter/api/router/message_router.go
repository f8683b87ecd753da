package router

import (
	"github.com/labstack/echo/v4"

	"campuslink/internal/adapter/api/handler"
	"campuslink/internal/adapter/api/middleware"
)

// SetupMessageRouter sets up the messaging routes.
func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware, banMiddleware *middleware.BanMiddleware) {
	messageGroup := e.Group("/v1/messages")
	messageGroup.Use(authMiddleware.Authenticate)

	messageGroup.POST("", messageHandler.SendMessage, banMiddleware.BanGuard)           // POST /v1/messages - send direct or group message
	messageGroup.GET("/conversations", messageHandler.GetConversations)                 // GET /v1/messages/conversations
	messageGroup.GET("/history/:userId", messageHandler.GetDirectHistory)               // GET /v1/messages/history/:userId
	messageGroup.GET("/group-history/:groupId", messageHandler.GetGroupHistory)         // GET /v1/messages/group-history/:groupId

	groupGroup := e.Group("/v1/groups")
	groupGroup.Use(authMiddleware.Authenticate)

	groupGroup.PUT("/:id/reset-unread", messageHandler.ResetUnread) // PUT /v1/groups/:id/reset-unread
}
