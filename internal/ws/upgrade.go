package ws

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"promolink/config"
	"promolink/internal/auth"
	"promolink/internal/service"

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

// UpgradeRequestFeed upgrades the connection into a request's live
// message feed. The token comes from the query string; inbound frames
// are treated as messages and go through the same negotiation rules as
// the REST endpoint.
func UpgradeRequestFeed(cfg *config.JWTConfig, hub *Hub, negotiations *service.NegotiationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
			return
		}

		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Participant check before the upgrade, with the same rules as
		// the REST read path.
		if _, err := negotiations.GetRequest(claims.UserID, claims.Role, uint(requestID)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := &Client{
			UserID: claims.UserID,
			Role:   claims.Role,
			Send:   make(chan []byte, 256),
		}
		room := hub.GetOrCreateRoom(uint(requestID))
		room.Join(client)
		defer client.Close()

		go writePump(client, conn)
		readPump(conn, func(frame inboundFrame) {
			msg, req, err := negotiations.SendMessage(claims.UserID, claims.Role, uint(requestID), frame.Body, frame.Kind)
			if err != nil {
				data, _ := json.Marshal(map[string]interface{}{"type": "error", "error": err.Error()})
				select {
				case client.Send <- data:
				default:
				}
				return
			}
			room.Broadcast(nil, map[string]interface{}{
				"type":    "message",
				"message": msg,
				"state":   req.State,
			})
		})
	}
}

type inboundFrame struct {
	Body string `json:"body"`
	Kind string `json:"kind"`
}

func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn, onFrame func(inboundFrame)) {
	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		if frame.Body != "" {
			onFrame(frame)
		}
	}
}
