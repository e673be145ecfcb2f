package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

const WatchStatusJoined = "joined"

type WatchService interface {
	CreateSession(ctx context.Context, hostID string, req entity.WatchSessionCreate) (*entity.WatchSession, error)
	GetSession(ctx context.Context, id string) (*entity.WatchSession, error)
	JoinSession(ctx context.Context, id, userID string) (string, error)
	Control(ctx context.Context, id, userID string, control entity.WatchControl) (*entity.WatchSession, error)
	Chat(ctx context.Context, id, userID, text string) (*entity.ChatMessage, error)
}

type watchRepo interface {
	Get(ctx context.Context, id string) (*entity.WatchSession, error)
	Insert(ctx context.Context, session *entity.WatchSession) error
	Update(ctx context.Context, id string, fields repository.Record) error
	Push(ctx context.Context, id, field string, element any) error
}

type watchService struct {
	watchRepo   watchRepo
	broadcaster broadcaster
}

func NewWatchService(watchRepo watchRepo, broadcaster broadcaster) WatchService {
	return &watchService{
		watchRepo:   watchRepo,
		broadcaster: broadcaster,
	}
}

func (that *watchService) CreateSession(ctx context.Context, hostID string, req entity.WatchSessionCreate) (*entity.WatchSession, error) {
	if hostID == "" || req.Title == "" || req.URL == "" {
		return nil, fmt.Errorf("%w: host, title and url are required", apperror.ErrInvalidArgument)
	}

	session := &entity.WatchSession{
		ID:           pkg.GenerateID(),
		HostID:       hostID,
		Title:        req.Title,
		URL:          req.URL,
		Platform:     req.Platform,
		Participants: []string{hostID},
		CreatedAt:    now(),
		ChatMessages: []entity.ChatMessage{},
	}

	if err := that.watchRepo.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("could not save watch session: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":       entity.EventWatchSessionCreated,
		"session_id": session.ID,
		"title":      session.Title,
		"host_id":    hostID,
	})

	return session, nil
}

func (that *watchService) GetSession(ctx context.Context, id string) (*entity.WatchSession, error) {
	session, err := that.watchRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get watch session: %w", err)
	}

	return session, nil
}

// JoinSession is idempotent; only a new participant is announced.
func (that *watchService) JoinSession(ctx context.Context, id, userID string) (string, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return "", err
	}

	if slices.Contains(session.Participants, userID) {
		return WatchStatusJoined, nil
	}

	if err = that.watchRepo.Push(ctx, id, "participants", userID); err != nil {
		return "", fmt.Errorf("could not join watch session: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":       entity.EventUserJoinedWatch,
		"session_id": id,
		"user_id":    userID,
	})

	return WatchStatusJoined, nil
}

// Control changes playback. Only participants may control a session.
func (that *watchService) Control(ctx context.Context, id, userID string, control entity.WatchControl) (*entity.WatchSession, error) {
	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(session.Participants, userID) {
		return nil, fmt.Errorf("%w: user %s is not watching", apperror.ErrForbidden, userID)
	}

	fields := repository.Record{}

	switch control.Action {
	case entity.WatchActionPlay:
		fields["is_playing"] = true
	case entity.WatchActionPause:
		fields["is_playing"] = false
	case entity.WatchActionSeek:
	default:
		return nil, fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidArgument, control.Action)
	}

	if control.Timestamp != nil {
		fields["current_time"] = *control.Timestamp
	}

	if len(fields) == 0 {
		return session, nil
	}

	if err = that.watchRepo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("could not update playback: %w", err)
	}

	session, err = that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":       entity.EventWatchControl,
		"session_id": id,
		"user_id":    userID,
		"action":     control.Action,
		"timestamp":  session.CurrentTime,
		"is_playing": session.IsPlaying,
	})

	return session, nil
}

func (that *watchService) Chat(ctx context.Context, id, userID, text string) (*entity.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message is empty", apperror.ErrInvalidArgument)
	}

	message := &entity.ChatMessage{
		ID:        pkg.GenerateID(),
		UserID:    userID,
		Message:   text,
		Timestamp: now(),
	}

	if err := that.watchRepo.Push(ctx, id, "chat_messages", message); err != nil {
		return nil, fmt.Errorf("could not save chat message: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":       entity.EventWatchChat,
		"session_id": id,
		"message":    message,
	})

	return message, nil
}
