package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const (
	StatusWaiting   = "waiting"
	StatusActive    = "active"
	StatusCompleted = "completed"

	// WinnerDraw marks a completed game without a single winner.
	WinnerDraw = "draw"
)

type GameType string

const (
	TicTacHearts  GameType = "tic_tac_hearts"
	LoveTrivia    GameType = "love_trivia"
	MemoryMatch   GameType = "memory_match"
	WordLove      GameType = "word_love"
	DistanceQuest GameType = "distance_quest"
	LovePuzzles   GameType = "love_puzzles"
)

var GameTypes = []GameType{
	TicTacHearts,
	LoveTrivia,
	MemoryMatch,
	WordLove,
	DistanceQuest,
	LovePuzzles,
}

func (that GameType) IsKnown() bool {
	return slices.Contains(GameTypes, that)
}

type GameSession struct {
	ID        string    `json:"id"`
	GameType  GameType  `json:"game_type"`
	Players   []string  `json:"players"`
	State     GameState `json:"game_state"`
	Status    string    `json:"status"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGameSession(id string, gameType GameType, creatorID string, state GameState, now time.Time) *GameSession {
	return &GameSession{
		ID:        id,
		GameType:  gameType,
		Players:   []string{creatorID},
		State:     state,
		Status:    StatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UnmarshalJSON decodes game_state into the variant that matches game_type.
func (that *GameSession) UnmarshalJSON(data []byte) error {
	type alias GameSession

	var raw struct {
		alias
		State json.RawMessage `json:"game_state"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal game session: %w", err)
	}

	*that = GameSession(raw.alias)

	state, err := DecodeState(that.GameType, raw.State)
	if err != nil {
		return fmt.Errorf("failed to decode state of game %s: %w", that.ID, err)
	}

	that.State = state

	return nil
}

// Seat returns the join-order index of the participant, or -1.
func (that *GameSession) Seat(playerID string) int {
	return slices.Index(that.Players, playerID)
}

func (that *GameSession) HasPlayer(playerID string) bool {
	return that.Seat(playerID) >= 0
}

func (that *GameSession) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *GameSession) IsActive() bool {
	return that.Status == StatusActive
}

func (that *GameSession) IsCompleted() bool {
	return that.Status == StatusCompleted
}

// WinnerValue returns the winner or nil, the form used on the wire.
func (that *GameSession) WinnerValue() any {
	return WinnerOrNil(that.Winner)
}

func WinnerOrNil(winner string) any {
	if winner == "" {
		return nil
	}

	return winner
}
