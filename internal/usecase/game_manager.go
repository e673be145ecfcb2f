package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
	"github.com/rocketscienceinc/celebration-backend/internal/rules"
)

const (
	JoinStatusJoined        = "joined"
	JoinStatusAlreadyJoined = "already_joined"

	MoveStatusSuccess = "success"

	listSessionsLimit = 20
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	AddPlayer(ctx context.Context, id, playerID, status string, now time.Time) error
	Update(ctx context.Context, id string, update repository.GameSessionUpdate) error
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.GameSession, error)
}

type broadcaster interface {
	Broadcast(event entity.Event)
}

type JoinResult struct {
	Status     string
	GameStatus string
	Game       *entity.GameSession
}

type MoveResult struct {
	Status     string
	GameState  entity.GameState
	GameStatus string
	// Winner is empty while nobody has won.
	Winner string
}

// GameManager owns the session lifecycle: create, join, move and read.
type GameManager struct {
	logger      *slog.Logger
	gameRepo    gameRepo
	broadcaster broadcaster
	locks       *sessionLocks
	now         func() time.Time
}

// NewGameManager builds the manager. With serializeMoves set, joins and moves
// on the same session run one at a time inside this process.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, broadcaster broadcaster, serializeMoves bool) *GameManager {
	manager := &GameManager{
		logger:      logger.With("component", "game_manager"),
		gameRepo:    gameRepo,
		broadcaster: broadcaster,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}

	if serializeMoves {
		manager.locks = newSessionLocks()
	}

	return manager
}

func (that *GameManager) CreateSession(ctx context.Context, gameType entity.GameType, creatorID string) (*entity.GameSession, error) {
	log := that.logger.With("method", "CreateSession", "game_type", gameType)

	if creatorID == "" {
		return nil, fmt.Errorf("%w: player id is required", apperror.ErrInvalidArgument)
	}

	state, err := rules.InitialState(gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to build initial state: %w", err)
	}

	game := entity.NewGameSession(pkg.GenerateID(), gameType, creatorID, state, that.now())

	if err = that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.broadcast(entity.Event{
		"type":      entity.EventGameCreated,
		"game_id":   game.ID,
		"game_type": game.GameType,
		"host_id":   creatorID,
	})

	log.Info("game created", "game_id", game.ID, "host_id", creatorID)

	return game, nil
}

func (that *GameManager) JoinSession(ctx context.Context, gameID, playerID string) (*JoinResult, error) {
	log := that.logger.With("method", "JoinSession", "game_id", gameID)

	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", apperror.ErrInvalidArgument)
	}

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.HasPlayer(playerID) {
		return &JoinResult{Status: JoinStatusAlreadyJoined, GameStatus: game.Status, Game: game}, nil
	}

	status := game.Status
	if !game.IsCompleted() {
		status = rules.StatusFor(game.GameType, len(game.Players)+1)
	}

	now := that.now()
	if err = that.gameRepo.AddPlayer(ctx, gameID, playerID, status, now); err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	game.Players = append(game.Players, playerID)
	game.Status = status
	game.UpdatedAt = now

	that.broadcast(entity.Event{
		"type":      entity.EventPlayerJoined,
		"game_id":   gameID,
		"player_id": playerID,
		"status":    status,
	})

	log.Info("player joined", "player_id", playerID, "status", status)

	return &JoinResult{Status: JoinStatusJoined, GameStatus: status, Game: game}, nil
}

// SubmitMove applies a participant's move. Illegal moves and moves on a session
// that is not active leave the session unchanged but are still broadcast.
func (that *GameManager) SubmitMove(ctx context.Context, gameID string, move entity.Move) (*MoveResult, error) {
	log := that.logger.With("method", "SubmitMove", "game_id", gameID, "player_id", move.PlayerID)

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	seat := game.Seat(move.PlayerID)
	if seat < 0 {
		return nil, fmt.Errorf("%w: player %s is not in game %s", apperror.ErrForbidden, move.PlayerID, gameID)
	}

	move.GameID = gameID

	result := &MoveResult{
		Status:     MoveStatusSuccess,
		GameState:  game.State,
		GameStatus: game.Status,
		Winner:     game.Winner,
	}

	if game.IsActive() {
		outcome := rules.ApplyMove(game.GameType, game.State, move, seat)
		if game.State != nil && !game.State.Implemented() {
			log.Info("move processing is not implemented for game type", "game_type", game.GameType)
		}

		if err = that.saveOutcome(ctx, game, outcome); err != nil {
			return nil, err
		}

		result.GameState = outcome.State
		result.GameStatus = outcome.Status
		result.Winner = game.Winner
	} else {
		log.Debug("move ignored, game is not active", "status", game.Status)
	}

	that.broadcast(entity.Event{
		"type":       entity.EventGameMove,
		"game_id":    gameID,
		"player_id":  move.PlayerID,
		"move_data":  move.MoveData,
		"game_state": result.GameState,
		"status":     result.GameStatus,
		"winner":     entity.WinnerOrNil(result.Winner),
	})

	return result, nil
}

// saveOutcome persists state and status. A winner is written only once.
func (that *GameManager) saveOutcome(ctx context.Context, game *entity.GameSession, outcome rules.Outcome) error {
	now := that.now()
	update := repository.GameSessionUpdate{
		State:     outcome.State,
		Status:    &outcome.Status,
		UpdatedAt: now,
	}

	if game.Winner == "" && outcome.Winner != "" {
		update.Winner = &outcome.Winner
	}

	if err := that.gameRepo.Update(ctx, game.ID, update); err != nil {
		return fmt.Errorf("failed to save move: %w", err)
	}

	game.State = outcome.State
	game.Status = outcome.Status
	game.UpdatedAt = now

	if update.Winner != nil {
		game.Winner = *update.Winner
	}

	return nil
}

func (that *GameManager) GetSession(ctx context.Context, gameID string) (*entity.GameSession, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListSessions returns the 20 newest sessions with status, active by default.
func (that *GameManager) ListSessions(ctx context.Context, status string) ([]*entity.GameSession, error) {
	if status == "" {
		status = entity.StatusActive
	}

	games, err := that.gameRepo.ListByStatus(ctx, status, listSessionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

func (that *GameManager) broadcast(event entity.Event) {
	if that.broadcaster == nil {
		return
	}

	that.broadcaster.Broadcast(event)
}
