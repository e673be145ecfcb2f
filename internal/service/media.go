package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/pkg"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
)

type PhotoService interface {
	UploadPhoto(ctx context.Context, userID string, req entity.PhotoCreate) (*entity.Photo, error)
	ListPhotos(ctx context.Context, skip, limit int, featuredOnly bool) ([]*entity.Photo, error)
	GetPhoto(ctx context.Context, id string) (*entity.Photo, error)
	UpdatePhoto(ctx context.Context, id string, update entity.PhotoUpdate) (*entity.Photo, error)
	ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error)
	AddComment(ctx context.Context, id, userID, text string) (*entity.Comment, error)
}

type VideoService interface {
	UploadVideo(ctx context.Context, userID string, req entity.VideoCreate) (*entity.Video, error)
	ListVideos(ctx context.Context, skip, limit int) ([]*entity.Video, error)
	// WatchVideo returns the video and counts the view.
	WatchVideo(ctx context.Context, id string) (*entity.Video, error)
	ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error)
}

type photoRepo interface {
	Get(ctx context.Context, id string) (*entity.Photo, error)
	Insert(ctx context.Context, photo *entity.Photo) error
	Update(ctx context.Context, id string, fields repository.Record) error
	Push(ctx context.Context, id, field string, element any) error
	List(ctx context.Context, query repository.ListQuery) ([]*entity.Photo, error)
}

type videoRepo interface {
	Get(ctx context.Context, id string) (*entity.Video, error)
	Insert(ctx context.Context, video *entity.Video) error
	Update(ctx context.Context, id string, fields repository.Record) error
	List(ctx context.Context, query repository.ListQuery) ([]*entity.Video, error)
}

type photoService struct {
	photoRepo   photoRepo
	broadcaster broadcaster
}

func NewPhotoService(photoRepo photoRepo, broadcaster broadcaster) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		broadcaster: broadcaster,
	}
}

func (that *photoService) UploadPhoto(ctx context.Context, userID string, req entity.PhotoCreate) (*entity.Photo, error) {
	if userID == "" || req.Title == "" || req.ImageData == "" {
		return nil, fmt.Errorf("%w: user id, title and image data are required", apperror.ErrInvalidArgument)
	}

	photo := &entity.Photo{
		ID:          pkg.GenerateID(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageData:   req.ImageData,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		UploadedAt:  now(),
		Likes:       []string{},
		Comments:    []entity.Comment{},
	}

	if err := that.photoRepo.Insert(ctx, photo); err != nil {
		return nil, fmt.Errorf("could not save photo: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":     entity.EventNewPhoto,
		"photo_id": photo.ID,
		"user_id":  userID,
		"title":    photo.Title,
	})

	return photo, nil
}

// ListPhotos returns the newest photos first.
func (that *photoService) ListPhotos(ctx context.Context, skip, limit int, featuredOnly bool) ([]*entity.Photo, error) {
	query := repository.ListQuery{
		SortBy:     "uploaded_at",
		Descending: true,
		Skip:       skip,
		Limit:      pageSize(limit),
	}

	if featuredOnly {
		query.Filter = map[string]any{"is_featured": true}
	}

	photos, err := that.photoRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list photos: %w", err)
	}

	return photos, nil
}

func (that *photoService) GetPhoto(ctx context.Context, id string) (*entity.Photo, error) {
	photo, err := that.photoRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get photo: %w", err)
	}

	return photo, nil
}

func (that *photoService) UpdatePhoto(ctx context.Context, id string, update entity.PhotoUpdate) (*entity.Photo, error) {
	fields := repository.Record{}

	if update.Title != nil {
		fields["title"] = *update.Title
	}

	if update.Description != nil {
		fields["description"] = *update.Description
	}

	if update.IsFeatured != nil {
		fields["is_featured"] = *update.IsFeatured
	}

	if err := that.photoRepo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("could not update photo: %w", err)
	}

	return that.GetPhoto(ctx, id)
}

func (that *photoService) ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error) {
	photo, err := that.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	likes, result := toggleLike(photo.Likes, userID)
	if err = that.photoRepo.Update(ctx, id, repository.Record{"likes": likes}); err != nil {
		return nil, fmt.Errorf("could not save likes: %w", err)
	}

	return &result, nil
}

func (that *photoService) AddComment(ctx context.Context, id, userID, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment is empty", apperror.ErrInvalidArgument)
	}

	comment := &entity.Comment{
		ID:        pkg.GenerateID(),
		UserID:    userID,
		Comment:   text,
		CreatedAt: now(),
	}

	if err := that.photoRepo.Push(ctx, id, "comments", comment); err != nil {
		return nil, fmt.Errorf("could not save comment: %w", err)
	}

	return comment, nil
}

type videoService struct {
	videoRepo   videoRepo
	broadcaster broadcaster
}

func NewVideoService(videoRepo videoRepo, broadcaster broadcaster) VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		broadcaster: broadcaster,
	}
}

func (that *videoService) UploadVideo(ctx context.Context, userID string, req entity.VideoCreate) (*entity.Video, error) {
	if userID == "" || req.Title == "" || req.VideoData == "" {
		return nil, fmt.Errorf("%w: user id, title and video data are required", apperror.ErrInvalidArgument)
	}

	video := &entity.Video{
		ID:          pkg.GenerateID(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		VideoData:   req.VideoData,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		Duration:    req.Duration,
		UploadedAt:  now(),
		Likes:       []string{},
		Comments:    []entity.Comment{},
	}

	if err := that.videoRepo.Insert(ctx, video); err != nil {
		return nil, fmt.Errorf("could not save video: %w", err)
	}

	that.broadcaster.Broadcast(entity.Event{
		"type":     entity.EventNewVideo,
		"video_id": video.ID,
		"user_id":  userID,
		"title":    video.Title,
	})

	return video, nil
}

func (that *videoService) ListVideos(ctx context.Context, skip, limit int) ([]*entity.Video, error) {
	videos, err := that.videoRepo.List(ctx, repository.ListQuery{
		SortBy:     "uploaded_at",
		Descending: true,
		Skip:       skip,
		Limit:      pageSize(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("could not list videos: %w", err)
	}

	return videos, nil
}

func (that *videoService) WatchVideo(ctx context.Context, id string) (*entity.Video, error) {
	video, err := that.videoRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get video: %w", err)
	}

	video.Views++
	if err = that.videoRepo.Update(ctx, id, repository.Record{"views": video.Views}); err != nil {
		return nil, fmt.Errorf("could not count view: %w", err)
	}

	return video, nil
}

func (that *videoService) ToggleLike(ctx context.Context, id, userID string) (*entity.LikeResult, error) {
	video, err := that.videoRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get video: %w", err)
	}

	likes, result := toggleLike(video.Likes, userID)
	if err = that.videoRepo.Update(ctx, id, repository.Record{"likes": likes}); err != nil {
		return nil, fmt.Errorf("could not save likes: %w", err)
	}

	return &result, nil
}
