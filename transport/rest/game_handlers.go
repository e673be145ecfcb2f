package rest

import (
	"net/http"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

type joinResponse struct {
	Status     string `json:"status"`
	GameStatus string `json:"game_status"`
}

type moveResponse struct {
	Status     string           `json:"status"`
	GameState  entity.GameState `json:"game_state"`
	GameStatus string           `json:"game_status"`
	Winner     any              `json:"winner"`
}

// CreateGame handles POST /api/games/create?game_type=&player_id=.
func (that *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateGame")

	gameType, err := requiredQuery(r, "game_type")
	if err != nil {
		respondError(w, log, err)
		return
	}

	playerID, err := requiredQuery(r, "player_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	game, err := that.Games.CreateSession(r.Context(), entity.GameType(gameType), playerID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (that *Handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "JoinGame")

	playerID, err := requiredQuery(r, "player_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	result, err := that.Games.JoinSession(r.Context(), pathID(r), playerID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, joinResponse{Status: result.Status, GameStatus: result.GameStatus})
}

// MakeMove handles POST /api/games/{id}/move. The path id wins over the body's game_id.
func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MakeMove")

	var move entity.Move
	if err := decodeBody(r, &move); err != nil {
		respondError(w, log, err)
		return
	}

	result, err := that.Games.SubmitMove(r.Context(), pathID(r), move)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, moveResponse{
		Status:     result.Status,
		GameState:  result.GameState,
		GameStatus: result.GameStatus,
		Winner:     entity.WinnerOrNil(result.Winner),
	})
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetGame")

	game, err := that.Games.GetSession(r.Context(), pathID(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (that *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListGames")

	games, err := that.Games.ListSessions(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}
