package api

import (
	"net/http"

	"gigspace/internal/service"
	"gigspace/pkg/auth"
	"gigspace/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsRoutes struct {
	hub *service.NotificationHub
}

func NewWSRoutes(handler *gin.RouterGroup, hub *service.NotificationHub, a *auth.SessionAuth) {
	r := &wsRoutes{hub: hub}
	h := handler.Group("/ws")
	h.Use(a.SessionMiddleware())
	{
		h.GET("", r.handleWebSocket)
	}
}

func (r *wsRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	notifications := r.hub.Subscribe(userID)

	go r.readLoop(conn, userID, notifications)
	go r.writeLoop(conn, notifications)
}

// readLoop exists to notice the peer going away; unsubscribing closes the
// notification channel, which ends the write loop.
func (r *wsRoutes) readLoop(conn *websocket.Conn, userID int64, notifications chan service.Message) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			r.hub.Unsubscribe(userID, notifications)
			return
		}
	}
}

func (r *wsRoutes) writeLoop(conn *websocket.Conn, notifications chan service.Message) {
	defer conn.Close()

	log := logger.Logger()

	for message := range notifications {
		out, err := json.Marshal(message)
		if err != nil {
			log.Error("failed to marshal notification", zap.Error(err))
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			log.Error("failed to send notification", zap.Error(err))
			return
		}
	}
}
