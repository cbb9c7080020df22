package models

import "time"

// Like represents a like on a post
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
