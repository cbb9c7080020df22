package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account (PostgreSQL). Accounts are created by
// the external auth service; this backend only reads and enriches them.
type User struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex"`
	DisplayName string    `json:"display_name" gorm:"size:100"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	FCMToken    string    `json:"-"` // device token for push delivery, may be empty
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserCompact is the trimmed-down shape embedded in enriched responses
// (conversation summaries, notification actors, thread participants).
type UserCompact struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ToCompact returns the compact representation of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// UpdateUserRequest defines the request body for updating a profile
type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	FCMToken    string `json:"fcm_token,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
