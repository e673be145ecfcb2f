package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/testing/suite"
)

var baseTime = time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC)

func newTicTacHeartsGame(id string, createdAt time.Time) *entity.GameSession {
	state := &entity.TicTacHeartsState{Moves: []entity.TicTacHeartsMove{}}
	return entity.NewGameSession(id, entity.TicTacHearts, "alice", state, createdAt)
}

func TestGameRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(NewRedisStore(st.Storage))

	// Given: a new waiting game
	game := newTicTacHeartsGame("123", baseTime)

	// When: Create is called
	err := gameRepo.Create(ctx, game)

	// Then: the game is stored and reads back with its typed state
	require.NoError(t, err)

	stored, err := gameRepo.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game, stored)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository(NewMemoryStore())

		// Given: a stored memory match game
		state := &entity.MemoryMatchState{
			Cards:   []string{"❤️", "❤️"},
			Flipped: []int{},
			Matched: []int{},
			Scores:  map[string]int{},
		}
		game := entity.NewGameSession("g1", entity.MemoryMatch, "alice", state, baseTime)
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the state decodes into the memory match variant
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
		assert.IsType(t, &entity.MemoryMatchState{}, retrievedGame.State)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx := context.Background()
		gameRepo := NewGameRepository(NewMemoryStore())

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		require.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_AddPlayer(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(NewMemoryStore())

	// Given: a waiting game created by alice
	game := newTicTacHeartsGame("g1", baseTime)
	require.NoError(t, gameRepo.Create(ctx, game))

	// When: bob is added and the game becomes active
	later := baseTime.Add(time.Minute)
	err := gameRepo.AddPlayer(ctx, game.ID, "bob", entity.StatusActive, later)

	// Then: bob is the second participant and the status is updated
	require.NoError(t, err)

	stored, err := gameRepo.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, stored.Players)
	assert.Equal(t, entity.StatusActive, stored.Status)
	assert.True(t, later.Equal(stored.UpdatedAt))
	assert.True(t, baseTime.Equal(stored.CreatedAt))

	// And: adding a player to a missing game fails with not found
	err = gameRepo.AddPlayer(ctx, "missing", "bob", entity.StatusActive, later)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameRepository_Update(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(NewMemoryStore())

	// Given: an active game
	game := newTicTacHeartsGame("g1", baseTime)
	require.NoError(t, gameRepo.Create(ctx, game))

	// When: the state, status and winner are saved
	state := &entity.TicTacHeartsState{
		Board:         [3][3]string{{entity.HeartMark, "", ""}, {"", "", ""}, {"", "", ""}},
		CurrentPlayer: 1,
		Moves:         []entity.TicTacHeartsMove{{PlayerID: "alice", Row: 0, Col: 0, Mark: entity.HeartMark}},
	}
	status := entity.StatusCompleted
	winner := "alice"

	err := gameRepo.Update(ctx, game.ID, GameSessionUpdate{
		State:     state,
		Status:    &status,
		Winner:    &winner,
		UpdatedAt: baseTime.Add(time.Minute),
	})

	// Then: every field is persisted
	require.NoError(t, err)

	stored, err := gameRepo.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, state, stored.State)
	assert.Equal(t, entity.StatusCompleted, stored.Status)
	assert.Equal(t, "alice", stored.Winner)
	assert.Equal(t, []string{"alice"}, stored.Players)
}

func TestGameRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	gameRepo := NewGameRepository(NewMemoryStore())

	// Given: three active games and one waiting game created at different times
	for i, id := range []string{"old", "waiting", "new", "middle"} {
		game := newTicTacHeartsGame(id, baseTime.Add(time.Duration(i)*time.Minute))
		require.NoError(t, gameRepo.Create(ctx, game))

		if id != "waiting" {
			status := entity.StatusActive
			require.NoError(t, gameRepo.Update(ctx, id, GameSessionUpdate{Status: &status, UpdatedAt: baseTime}))
		}
	}

	// When: active games are listed with a limit of 2
	games, err := gameRepo.ListByStatus(ctx, entity.StatusActive, 2)

	// Then: the two newest active games are returned, newest first
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "middle", games[0].ID)
	assert.Equal(t, "new", games[1].ID)
}
