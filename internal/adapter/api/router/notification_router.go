package router

import (
	"github.com/labstack/echo/v4"

	"campuslink/internal/adapter/api/handler"
	"campuslink/internal/adapter/api/middleware"
)

// SetupNotificationRouter sets up the notification routes.
func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware, banMiddleware *middleware.BanMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.List)                      // GET /v1/notifications
	notificationGroup.GET("/unread-count", notificationHandler.UnreadCount)  // GET /v1/notifications/unread-count
	notificationGroup.PUT("/:id/read", notificationHandler.MarkRead)         // PUT /v1/notifications/:id/read
	notificationGroup.PUT("/:id/viewed", notificationHandler.MarkViewed)     // PUT /v1/notifications/:id/viewed
	notificationGroup.PUT("/viewed", notificationHandler.MarkAllViewed)      // PUT /v1/notifications/viewed - mark all viewed
	notificationGroup.DELETE("/:id", notificationHandler.Delete)             // DELETE /v1/notifications/:id

	// Friend request resolution mutates relationships, so banned users are
	// blocked here too.
	notificationGroup.PUT("/:id/accept", notificationHandler.Accept, banMiddleware.BanGuard)   // PUT /v1/notifications/:id/accept
	notificationGroup.PUT("/:id/decline", notificationHandler.Decline, banMiddleware.BanGuard) // PUT /v1/notifications/:id/decline

	adminGroup := e.Group("/v1/admin/notifications")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.AdminOnly)

	adminGroup.DELETE("/:id", notificationHandler.AdminDelete) // DELETE /v1/admin/notifications/:id
}
