package entity

import "time"

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo keeps the image inline as base64, the way clients upload it.
type Photo struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageData     string    `json:"image_data"`
	ThumbnailData string    `json:"thumbnail_data,omitempty"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Likes         []string  `json:"likes"`
	Comments      []Comment `json:"comments"`
	IsFeatured    bool      `json:"is_featured"`
}

type PhotoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
}

type Video struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	VideoData     string    `json:"video_data"`
	ThumbnailData string    `json:"thumbnail_data,omitempty"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	Duration      *int      `json:"duration,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Likes         []string  `json:"likes"`
	Comments      []Comment `json:"comments"`
	Views         int       `json:"views"`
}

const (
	LikeStatusLiked   = "liked"
	LikeStatusUnliked = "unliked"
)

type LikeResult struct {
	Status     string `json:"status"`
	TotalLikes int    `json:"total_likes"`
}

type PhotoCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageData   string `json:"image_data"`
	MimeType    string `json:"mime_type"`
	FileSize    int64  `json:"file_size"`
}

type VideoCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoData   string `json:"video_data"`
	MimeType    string `json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	Duration    *int   `json:"duration,omitempty"`
}
