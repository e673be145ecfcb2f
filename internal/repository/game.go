package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

const GameCollection = "game_sessions"

var ErrGameNotFound = fmt.Errorf("game %w", apperror.ErrNotFound)

// GameSessionUpdate is a partial update. Nil fields are left untouched.
type GameSessionUpdate struct {
	State     entity.GameState
	Status    *string
	Winner    *string
	UpdatedAt time.Time
}

func (that GameSessionUpdate) fields() Record {
	fields := Record{"updated_at": that.UpdatedAt}

	if that.State != nil {
		fields["game_state"] = that.State
	}

	if that.Status != nil {
		fields["status"] = *that.Status
	}

	if that.Winner != nil {
		fields["winner"] = *that.Winner
	}

	return fields
}

type GameRepository interface {
	Create(ctx context.Context, game *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	AddPlayer(ctx context.Context, id, playerID, status string, now time.Time) error
	Update(ctx context.Context, id string, update GameSessionUpdate) error
	ListByStatus(ctx context.Context, status string, limit int) ([]*entity.GameSession, error)
}

type gameRepository struct {
	store Store
}

func NewGameRepository(store Store) GameRepository {
	return &gameRepository{
		store: store,
	}
}

func (that *gameRepository) Create(ctx context.Context, game *entity.GameSession) error {
	record, err := ToRecord(game)
	if err != nil {
		return fmt.Errorf("could not convert game: %w", err)
	}

	if err = that.store.Insert(ctx, GameCollection, record); err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

func (that *gameRepository) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	record, err := that.store.Find(ctx, GameCollection, id)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.GameSession
	if err = FromRecord(record, &game); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}

	return &game, nil
}

// AddPlayer appends playerID to the participants and sets the recomputed status.
func (that *gameRepository) AddPlayer(ctx context.Context, id, playerID, status string, now time.Time) error {
	err := that.store.AppendToArrayField(ctx, GameCollection, id, "players", playerID)
	if errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	if err != nil {
		return fmt.Errorf("failed to add player: %w", err)
	}

	return that.Update(ctx, id, GameSessionUpdate{Status: &status, UpdatedAt: now})
}

func (that *gameRepository) Update(ctx context.Context, id string, update GameSessionUpdate) error {
	err := that.store.UpdateFields(ctx, GameCollection, id, update.fields())
	if errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// ListByStatus returns the newest sessions with the given status first.
func (that *gameRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entity.GameSession, error) {
	records, err := that.store.List(ctx, GameCollection, ListQuery{
		Filter:     map[string]any{"status": status},
		SortBy:     "created_at",
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*entity.GameSession, 0, len(records))
	for _, record := range records {
		var game entity.GameSession
		if err = FromRecord(record, &game); err != nil {
			return nil, fmt.Errorf("failed to decode game: %w", err)
		}

		games = append(games, &game)
	}

	return games, nil
}
