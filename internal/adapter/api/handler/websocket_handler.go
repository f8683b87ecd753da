package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"campuslink/internal/adapter/api/middleware"
	"campuslink/internal/domain/repository"
	ws "campuslink/internal/infrastructure/websocket"
	"campuslink/pkg/errors"
	"campuslink/pkg/logger"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	userRepo       repository.UserRepository
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, userRepo repository.UserRepository) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		userRepo:       userRepo,
	}
}

// HandleWebSocket authenticates and upgrades the connection, then binds it to
// the caller's user in the manager. Auth happens here rather than in
// middleware because browser WebSocket clients cannot set headers; the token
// arrives as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if user.Banned() {
		return errors.Forbidden("Account is banned", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register(client)
	logger.Info("WebSocket connected for user %s (%d connections)", userID, h.wsManager.ConnectionsFor(userID))

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
