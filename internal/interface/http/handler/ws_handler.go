package handler

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

// WSHandler устанавливает WebSocket соединения для уведомлений о заявках.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Handle обслуживает GET /api/ws?token=... после QueryTokenAuth.
func (h *WSHandler) Handle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("ws: upgrade failed")
		return
	}

	ws.NewClient(conn, h.hub, userID).Run()
}
