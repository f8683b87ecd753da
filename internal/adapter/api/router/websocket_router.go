package router

import (
	"github.com/labstack/echo/v4"

	"campuslink/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the realtime endpoint. No auth middleware:
// the handler authenticates from the token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
