package router

import (
	"campuslink/internal/adapter/api/handler"
	"campuslink/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	messageHandler *handler.MessageHandler,
	notificationHandler *handler.NotificationHandler,
	wsHandler *handler.WebSocketHandler,
	authMiddleware *middleware.AuthMiddleware,
	banMiddleware *middleware.BanMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
) {
	SetupMessageRouter(e, messageHandler, authMiddleware, banMiddleware)
	SetupNotificationRouter(e, notificationHandler, authMiddleware, banMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, wsHandler)
	SetupHealthRouter(e)
}
