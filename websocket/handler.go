package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GamificationHandler upgrades an authenticated request to a WebSocket
// connection that receives the caller's gamification events. Auth runs
// in the surrounding middleware, which puts the user id in context.
func GamificationHandler(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade gamification connection: %v", err)
		return
	}

	client := &GamificationClient{Conn: conn, UserID: userID}
	RegisterGamificationClient(client)

	// Drain the connection; clients only listen, so the first read
	// error means the peer went away.
	go func() {
		defer UnregisterGamificationClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
