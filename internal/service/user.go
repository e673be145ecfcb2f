package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

const onlineUsersLimit = 100

type UserService interface {
	CreateUser(ctx context.Context, req entity.UserCreate) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, update entity.UserUpdate) (*entity.User, error)
	ListOnline(ctx context.Context) ([]*entity.User, error)
	SetOnline(ctx context.Context, userID string, online bool) error
}

type userRepo interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	Insert(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, id string, fields repository.Record) error
	List(ctx context.Context, query repository.ListQuery) ([]*entity.User, error)
}

type userService struct {
	userRepo userRepo
}

func NewUserService(userRepo userRepo) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (that *userService) CreateUser(ctx context.Context, req entity.UserCreate) (*entity.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.DisplayName == "" {
		return nil, fmt.Errorf("%w: email and display name are required", apperror.ErrInvalidArgument)
	}

	existing, err := that.userRepo.List(ctx, repository.ListQuery{
		Filter: map[string]any{"email": req.Email},
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("could not check email: %w", err)
	}

	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: user with email %s", apperror.ErrAlreadyExists, req.Email)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleGuest
	}

	created := now()
	user := &entity.User{
		ID:          pkg.GenerateID(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
		PartnerName: req.PartnerName,
		CreatedAt:   created,
		LastActive:  created,
	}

	if err = that.userRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}

func (that *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := that.userRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	return user, nil
}

// UpdateUser applies the set fields and bumps last_active.
func (that *userService) UpdateUser(ctx context.Context, id string, update entity.UserUpdate) (*entity.User, error) {
	fields := repository.Record{"last_active": now()}

	if update.DisplayName != nil {
		fields["display_name"] = *update.DisplayName
	}

	if update.Role != nil {
		fields["role"] = *update.Role
	}

	if update.PartnerName != nil {
		fields["partner_name"] = *update.PartnerName
	}

	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}

	if err := that.userRepo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("could not update user: %w", err)
	}

	return that.GetUser(ctx, id)
}

func (that *userService) ListOnline(ctx context.Context) ([]*entity.User, error) {
	users, err := that.userRepo.List(ctx, repository.ListQuery{
		Filter: map[string]any{"is_online": true},
		Limit:  onlineUsersLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list online users: %w", err)
	}

	return users, nil
}

// SetOnline records presence. Connections of unknown users are allowed, so a
// missing user is not an error.
func (that *userService) SetOnline(ctx context.Context, userID string, online bool) error {
	err := that.userRepo.Update(ctx, userID, repository.Record{
		"is_online":   online,
		"last_active": now(),
	})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not set presence: %w", err)
	}

	return nil
}
