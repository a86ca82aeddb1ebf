package handler

import (
	"net/http"

	"seodesk/backend/internal/eventhub"
	"seodesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and subscribes the client to
// the live event feed. Runs behind AuthRequired, so the actor is
// already resolved.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	actor := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &eventhub.WebSocketClient{
		Hub:    h.Hub,
		UserID: actor.ID,
		Conn:   conn,
		Send:   make(chan models.DomainEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
