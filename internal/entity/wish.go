package entity

import "time"

const AnonymousName = "Anonymous"

type BirthdayWish struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Message     string    `json:"message"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	Likes       []string  `json:"likes"`
	IsApproved  bool      `json:"is_approved"`
}

type WishCreate struct {
	Message     string `json:"message"`
	IsAnonymous bool   `json:"is_anonymous"`
}
