package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/notify"
)

const (
	MessageHeartbeat = "heartbeat"
	MessageTyping    = "typing"

	defaultTypingContext = "general"
	defaultSendBuffer    = 256
)

type hub interface {
	Register(ctx context.Context, identity string, channel notify.Channel)
	Unregister(ctx context.Context, identity string, channel notify.Channel) bool
	Broadcast(event entity.Event)
}

// Message is an inbound client message.
type Message struct {
	Type    string `json:"type"`
	Context string `json:"context,omitempty"`
}

type handlerFunc func(ctx context.Context, identity string, conn *Connection, message *Message) error

type Server struct {
	logger     *slog.Logger
	hub        hub
	upgrader   websocket.Upgrader
	sendBuffer int

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub hub, sendBuffer int) *Server {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}

	server := &Server{
		logger:     logger.With("component", "websocket"),
		hub:        hub,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[MessageHeartbeat] = server.handleHeartbeat
	server.handlers[MessageTyping] = server.handleTyping

	return server
}

// Handle upgrades GET /ws/{user_id} and serves the connection until the client leaves.
func (that *Server) Handle(writer http.ResponseWriter, req *http.Request) {
	userID := mux.Vars(req)["user_id"]
	log := that.logger.With("method", "Handle", "user_id", userID)

	if userID == "" {
		http.Error(writer, "user id is required", http.StatusBadRequest)
		return
	}

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	// the request context is not canceled by a hijacked connection closing
	ctx := context.WithoutCancel(req.Context())

	conn := newConnection(wsConn, that.sendBuffer)
	that.hub.Register(ctx, userID, conn)

	log.Info("WebSocket connection established")

	go conn.writePump()

	that.handleMessages(ctx, userID, conn)

	conn.Close()
	that.hub.Unregister(ctx, userID, conn)

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until the socket fails.
func (that *Server) handleMessages(ctx context.Context, identity string, conn *Connection) {
	log := that.logger.With("method", "handleMessages", "user_id", identity)

	conn.conn.SetReadLimit(maxMessageSize)
	_ = conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}

			return
		}

		_ = conn.conn.SetReadDeadline(time.Now().Add(pongWait))

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Type]
		if !ok {
			log.Debug("unknown message type ignored", "type", message.Type)
			continue
		}

		if err = handler(ctx, identity, conn, &message); err != nil {
			log.Debug("error processing message", "type", message.Type, "error", err)
		}
	}
}
