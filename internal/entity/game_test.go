package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
)

func TestGameSession_JSON(t *testing.T) {
	t.Run("State decodes into the variant of the game type", func(t *testing.T) {
		// Given: a tic-tac-hearts session with one move played
		state := &TicTacHeartsState{CurrentPlayer: 1}
		state.Board[1][1] = HeartMark
		state.Moves = []TicTacHeartsMove{{PlayerID: "alice", Row: 1, Col: 1, Mark: HeartMark}}

		game := NewGameSession("g1", TicTacHearts, "alice", state, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC))

		data, err := json.Marshal(game)
		require.NoError(t, err)

		// When: it is decoded again
		var decoded GameSession
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the state comes back as a typed tic-tac-hearts state
		decodedState, ok := decoded.State.(*TicTacHeartsState)
		require.True(t, ok)
		assert.Equal(t, state, decodedState)
		assert.Equal(t, []string{"alice"}, decoded.Players)
		assert.Equal(t, StatusWaiting, decoded.Status)
	})

	t.Run("Missing state decodes to an empty variant", func(t *testing.T) {
		var decoded GameSession
		require.NoError(t, json.Unmarshal([]byte(`{"id":"g2","game_type":"word_love"}`), &decoded))

		assert.IsType(t, &WordLoveState{}, decoded.State)
	})

	t.Run("Unknown game type fails", func(t *testing.T) {
		var decoded GameSession
		err := json.Unmarshal([]byte(`{"id":"g3","game_type":"chess","game_state":{}}`), &decoded)

		require.ErrorIs(t, err, apperror.ErrUnknownGameType)
	})
}

func TestGameSession_Seats(t *testing.T) {
	// Given: a session joined by alice then bob
	game := &GameSession{Players: []string{"alice", "bob"}}

	// When / Then: seats follow join order
	assert.Equal(t, 0, game.Seat("alice"))
	assert.Equal(t, 1, game.Seat("bob"))
	assert.Equal(t, -1, game.Seat("carol"))
	assert.True(t, game.HasPlayer("bob"))
	assert.False(t, game.HasPlayer("carol"))
}

func TestGameSession_StatusHelpers(t *testing.T) {
	tests := []struct {
		status    string
		waiting   bool
		active    bool
		completed bool
	}{
		{status: StatusWaiting, waiting: true},
		{status: StatusActive, active: true},
		{status: StatusCompleted, completed: true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			game := &GameSession{Status: tt.status}

			assert.Equal(t, tt.waiting, game.IsWaiting())
			assert.Equal(t, tt.active, game.IsActive())
			assert.Equal(t, tt.completed, game.IsCompleted())
		})
	}
}

func TestGameSession_WinnerValue(t *testing.T) {
	assert.Nil(t, (&GameSession{}).WinnerValue())
	assert.Equal(t, WinnerDraw, (&GameSession{Winner: WinnerDraw}).WinnerValue())
}

func TestGameType_IsKnown(t *testing.T) {
	for _, gameType := range GameTypes {
		assert.True(t, gameType.IsKnown(), gameType)
	}

	assert.False(t, GameType("chess").IsKnown())
}

func TestVideoCall_Participants(t *testing.T) {
	call := &VideoCall{CallerID: "anna", CalleeID: "ben"}

	assert.Equal(t, "ben", call.Other("anna"))
	assert.Equal(t, "anna", call.Other("ben"))
	assert.True(t, call.HasParticipant("ben"))
	assert.False(t, call.HasParticipant("carol"))
}
