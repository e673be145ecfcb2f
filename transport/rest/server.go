package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func NewServer(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "http"),
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       30 * time.Second,
		},
	}
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start", "addr", that.srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started")
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Info("HTTP server stopped")

	return nil
}

// NewRouter mounts the API under /api, the event socket under /ws/{user_id}
// and the liveness probe on /ping.
func NewRouter(handlers *Handlers, socket http.HandlerFunc) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ping", handlers.Liveness).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", handlers.Ping).Methods(http.MethodGet)

	api.HandleFunc("/games/create", handlers.CreateGame).Methods(http.MethodPost)
	api.HandleFunc("/games", handlers.ListGames).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", handlers.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/join", handlers.JoinGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/move", handlers.MakeMove).Methods(http.MethodPost)

	api.HandleFunc("/users", handlers.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/online", handlers.ListOnlineUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handlers.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(http.MethodPut)

	api.HandleFunc("/photos/upload", handlers.UploadPhoto).Methods(http.MethodPost)
	api.HandleFunc("/photos", handlers.ListPhotos).Methods(http.MethodGet)
	api.HandleFunc("/photos/{id}", handlers.GetPhoto).Methods(http.MethodGet)
	api.HandleFunc("/photos/{id}", handlers.UpdatePhoto).Methods(http.MethodPut)
	api.HandleFunc("/photos/{id}/like", handlers.LikePhoto).Methods(http.MethodPost)
	api.HandleFunc("/photos/{id}/comment", handlers.CommentPhoto).Methods(http.MethodPost)

	api.HandleFunc("/videos/upload", handlers.UploadVideo).Methods(http.MethodPost)
	api.HandleFunc("/videos", handlers.ListVideos).Methods(http.MethodGet)
	api.HandleFunc("/videos/{id}", handlers.GetVideo).Methods(http.MethodGet)
	api.HandleFunc("/videos/{id}/like", handlers.LikeVideo).Methods(http.MethodPost)

	api.HandleFunc("/wishes", handlers.CreateWish).Methods(http.MethodPost)
	api.HandleFunc("/wishes", handlers.ListWishes).Methods(http.MethodGet)
	api.HandleFunc("/wishes/{id}/like", handlers.LikeWish).Methods(http.MethodPost)

	api.HandleFunc("/watch-together/create", handlers.CreateWatchSession).Methods(http.MethodPost)
	api.HandleFunc("/watch-together/{id}", handlers.GetWatchSession).Methods(http.MethodGet)
	api.HandleFunc("/watch-together/{id}/join", handlers.JoinWatchSession).Methods(http.MethodPost)
	api.HandleFunc("/watch-together/{id}/control", handlers.ControlWatchSession).Methods(http.MethodPost)
	api.HandleFunc("/watch-together/{id}/chat", handlers.ChatWatchSession).Methods(http.MethodPost)

	api.HandleFunc("/video-call/initiate", handlers.InitiateCall).Methods(http.MethodPost)
	api.HandleFunc("/video-call/{id}/answer", handlers.AnswerCall).Methods(http.MethodPost)
	api.HandleFunc("/video-call/{id}/end", handlers.EndCall).Methods(http.MethodPost)

	if socket != nil {
		router.HandleFunc("/ws/{user_id}", socket)
	}

	return router
}
