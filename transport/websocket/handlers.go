package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

func (that *Server) handleHeartbeat(_ context.Context, _ string, conn *Connection, _ *Message) error {
	if err := conn.Send(entity.NewEvent(entity.EventHeartbeatAck)); err != nil {
		return fmt.Errorf("failed to send heartbeat ack: %w", err)
	}

	return nil
}

// handleTyping tells everyone that identity is typing somewhere in the app.
func (that *Server) handleTyping(_ context.Context, identity string, _ *Connection, message *Message) error {
	typingContext := message.Context
	if typingContext == "" {
		typingContext = defaultTypingContext
	}

	that.hub.Broadcast(entity.Event{
		"type":    entity.EventUserTyping,
		"user_id": identity,
		"context": typingContext,
	})

	return nil
}
