package service

import (
	"slices"
	"time"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

const defaultPageSize = 20

type broadcaster interface {
	Broadcast(event entity.Event)
}

type notifier interface {
	broadcaster
	SendTo(identity string, event entity.Event)
}

func now() time.Time {
	return time.Now().UTC()
}

// toggleLike adds userID to likes or removes it when already present.
func toggleLike(likes []string, userID string) ([]string, entity.LikeResult) {
	if index := slices.Index(likes, userID); index >= 0 {
		likes = slices.Delete(slices.Clone(likes), index, index+1)
		return likes, entity.LikeResult{Status: entity.LikeStatusUnliked, TotalLikes: len(likes)}
	}

	likes = append(slices.Clone(likes), userID)

	return likes, entity.LikeResult{Status: entity.LikeStatusLiked, TotalLikes: len(likes)}
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}

	return limit
}
