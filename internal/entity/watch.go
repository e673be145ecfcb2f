package entity

import "time"

const (
	WatchActionPlay  = "play"
	WatchActionPause = "pause"
	WatchActionSeek  = "seek"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type WatchSession struct {
	ID           string        `json:"id"`
	HostID       string        `json:"host_id"`
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	Platform     string        `json:"platform"`
	Participants []string      `json:"participants"`
	CurrentTime  float64       `json:"current_time"`
	IsPlaying    bool          `json:"is_playing"`
	CreatedAt    time.Time     `json:"created_at"`
	ChatMessages []ChatMessage `json:"chat_messages"`
}

type WatchControl struct {
	Action    string   `json:"action"`
	Timestamp *float64 `json:"timestamp,omitempty"`
}

type WatchSessionCreate struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}
