package entity

import "time"

const (
	RoleHusband = "husband"
	RoleWife    = "wife"
	RoleGuest   = "guest"
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	PartnerName string    `json:"partner_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
	IsOnline    bool      `json:"is_online"`
}

type UserUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	PartnerName *string `json:"partner_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type UserCreate struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	PartnerName string `json:"partner_name,omitempty"`
}
