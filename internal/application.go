package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/celebration-backend/internal/config"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/notify"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
	"github.com/rocketscienceinc/celebration-backend/internal/repository/storage"
	"github.com/rocketscienceinc/celebration-backend/internal/service"
	"github.com/rocketscienceinc/celebration-backend/internal/usecase"
	"github.com/rocketscienceinc/celebration-backend/transport/rest"
	"github.com/rocketscienceinc/celebration-backend/transport/websocket"
)

// RunApp - runs the application until ctx is canceled.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	store, closeStore, err := openStore(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	users := repository.NewCollection[entity.User](store, repository.UserCollection)
	userService := service.NewUserService(users)

	hub := notify.NewHub(logger, userService)

	gameManager := usecase.NewGameManager(logger, repository.NewGameRepository(store), hub, conf.Game.SerializeMoves)

	handlers := rest.NewHandlers(logger, rest.Services{
		Games:  gameManager,
		Users:  userService,
		Photos: service.NewPhotoService(repository.NewCollection[entity.Photo](store, repository.PhotoCollection), hub),
		Videos: service.NewVideoService(repository.NewCollection[entity.Video](store, repository.VideoCollection), hub),
		Wishes: service.NewWishService(logger, repository.NewCollection[entity.BirthdayWish](store, repository.WishCollection), users, hub),
		Watch:  service.NewWatchService(repository.NewCollection[entity.WatchSession](store, repository.WatchSessionCollection), hub),
		Calls:  service.NewCallService(repository.NewCollection[entity.VideoCall](store, repository.VideoCallCollection), hub),
	})

	wsServer := websocket.New(logger, hub, conf.WebSocket.SendBuffer)
	httpServer := rest.NewServer(logger, conf.HTTPPort, rest.NewRouter(handlers, wsServer.Handle))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)

	if err = httpServer.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shut down")

	return nil
}

// openStore connects the configured document store. The returned func releases it.
func openStore(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.Store, func(), error) {
	switch conf.Storage.Driver {
	case config.StoragePostgres:
		db, err := storage.NewPostgres(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		closeDB := func() {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				dbErr = sqlDB.Close()
			}

			if dbErr != nil {
				log.Error("could not close postgres storage", "error", dbErr)
			}
		}

		return repository.NewPostgresStore(db), closeDB, nil

	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")

		return repository.NewMemoryStore(), func() {}, nil

	default:
		redisStorage, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeRedis := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisStore(redisStorage), closeRedis, nil
	}
}
