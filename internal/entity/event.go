package entity

import "encoding/json"

// Event is a fan-out notification. Every event carries a "type" key.
type Event map[string]any

const (
	EventGameCreated  = "game_created"
	EventPlayerJoined = "player_joined"
	EventGameMove     = "game_move"

	EventHeartbeatAck = "heartbeat_ack"
	EventUserTyping   = "user_typing"

	EventNewPhoto            = "new_photo"
	EventNewVideo            = "new_video"
	EventNewWish             = "new_wish"
	EventWatchSessionCreated = "watch_session_created"
	EventUserJoinedWatch     = "user_joined_watch"
	EventWatchControl        = "watch_control"
	EventWatchChat           = "watch_chat"
	EventIncomingCall        = "incoming_call"
	EventCallAnswered        = "call_answered"
	EventCallEnded           = "call_ended"
)

func NewEvent(eventType string) Event {
	return Event{"type": eventType}
}

func (that Event) Type() string {
	eventType, _ := that["type"].(string)
	return eventType
}

// Move is a move submission. MoveData stays raw: its shape belongs to the game type.
type Move struct {
	GameID   string          `json:"game_id"`
	PlayerID string          `json:"player_id"`
	MoveData json.RawMessage `json:"move_data"`
}
