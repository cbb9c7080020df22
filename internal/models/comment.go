package models

import "time"

// Comment represents a comment on a post. ParentID is set for replies to
// another comment.
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	UserID    string    `json:"user_id" gorm:"type:uuid;index"`
	ParentID  *string   `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=500"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid4"`
}
