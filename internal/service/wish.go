package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

const (
	defaultWishesLimit = 50
	wishPreviewLength  = 50
)

type WishService interface {
	CreateWish(ctx context.Context, userID string, req entity.WishCreate) (*entity.BirthdayWish, error)
	// ListWishes returns approved wishes, newest first.
	ListWishes(ctx context.Context, skip, limit int) ([]*entity.BirthdayWish, error)
	ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error)
}

type wishRepo interface {
	Get(ctx context.Context, id string) (*entity.BirthdayWish, error)
	Insert(ctx context.Context, wish *entity.BirthdayWish) error
	Update(ctx context.Context, id string, fields repository.Record) error
	List(ctx context.Context, query repository.ListQuery) ([]*entity.BirthdayWish, error)
}

type userGetter interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type wishService struct {
	logger      *slog.Logger
	wishRepo    wishRepo
	userRepo    userGetter
	broadcaster broadcaster
}

func NewWishService(logger *slog.Logger, wishRepo wishRepo, userRepo userGetter, broadcaster broadcaster) WishService {
	return &wishService{
		logger:      logger,
		wishRepo:    wishRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

func (that *wishService) CreateWish(ctx context.Context, userID string, req entity.WishCreate) (*entity.BirthdayWish, error) {
	log := that.logger.With("method", "CreateWish", "user_id", userID)

	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is empty", apperror.ErrInvalidArgument)
	}

	userName := entity.AnonymousName
	if !req.IsAnonymous {
		user, err := that.userRepo.Get(ctx, userID)
		switch {
		case err == nil:
			userName = user.DisplayName
		case errors.Is(err, apperror.ErrNotFound):
			log.Debug("author not found, signing as anonymous")
		default:
			return nil, fmt.Errorf("could not get author: %w", err)
		}
	}

	wish := &entity.BirthdayWish{
		ID:          pkg.GenerateID(),
		UserID:      userID,
		UserName:    userName,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   now(),
		Likes:       []string{},
		IsApproved:  true,
	}

	if err := that.wishRepo.Insert(ctx, wish); err != nil {
		return nil, fmt.Errorf("could not save wish: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":      entity.EventNewWish,
		"wish_id":   wish.ID,
		"user_name": userName,
		"message":   preview(wish.Message),
	})

	return wish, nil
}

func (that *wishService) ListWishes(ctx context.Context, skip, limit int) ([]*entity.BirthdayWish, error) {
	if limit <= 0 {
		limit = defaultWishesLimit
	}

	wishes, err := that.wishRepo.List(ctx, repository.ListQuery{
		Filter:     map[string]any{"is_approved": true},
		SortBy:     "created_at",
		Descending: true,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list wishes: %w", err)
	}

	return wishes, nil
}

func (that *wishService) ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error) {
	wish, err := that.wishRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get wish: %w", err)
	}

	likes, result := toggleLike(wish.Likes, userID)
	if err = that.wishRepo.Update(ctx, id, repository.Record{"likes": likes}); err != nil {
		return nil, fmt.Errorf("could not save likes: %w", err)
	}

	return &result, nil
}

// preview cuts long messages down for notifications.
func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= wishPreviewLength {
		return message
	}

	return string(runes[:wishPreviewLength]) + "..."
}
