package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/service"
	"github.com/rocketscienceinc/celebration-backend/internal/usecase"
)

type gameManager interface {
	CreateSession(ctx context.Context, gameType entity.GameType, creatorID string) (*entity.GameSession, error)
	JoinSession(ctx context.Context, gameID, playerID string) (*usecase.JoinResult, error)
	SubmitMove(ctx context.Context, gameID string, move entity.Move) (*usecase.MoveResult, error)
	GetSession(ctx context.Context, gameID string) (*entity.GameSession, error)
	ListSessions(ctx context.Context, status string) ([]*entity.GameSession, error)
}

// Services groups the collaborators the handlers call into.
type Services struct {
	Games  gameManager
	Users  service.UserService
	Photos service.PhotoService
	Videos service.VideoService
	Wishes service.WishService
	Watch  service.WatchService
	Calls  service.CallService
}

type Handlers struct {
	logger *slog.Logger
	Services
}

func NewHandlers(logger *slog.Logger, services Services) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		Services: services,
	}
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
