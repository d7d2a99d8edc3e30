package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// chatMessage is one user turn over the socket
type chatMessage struct {
	Text string `json:"text"`
}

// chatReply is the engine's answer for one turn
type chatReply struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// handleChat runs a streaming conversation over one WebSocket. Turns within
// a connection are inherently sequential, matching the engine's calling
// convention.
func (s *Server) handleChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	sessionID := c.Param("id")
	conn.SetReadLimit(64 * 1024)

	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		var msg chatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		order, err := s.store.Load(sessionID)
		if err != nil {
			s.writeReply(conn, chatReply{Error: "session not found"})
			return
		}

		start := time.Now()
		reply, order := s.engine.Process(c.Request.Context(), msg.Text, order)
		if s.metrics != nil {
			s.metrics.ObserveTurn("processed", time.Since(start))
		}

		if err := s.store.Save(order); err != nil {
			s.writeReply(conn, chatReply{Error: "failed to save session"})
			return
		}
		s.recordTurn(order.ID, msg.Text, reply)
		s.writeReply(conn, chatReply{Reply: reply})
	}
}

func (s *Server) writeReply(conn *websocket.Conn, reply chatReply) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(reply); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
