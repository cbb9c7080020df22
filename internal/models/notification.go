package models

import "time"

// Notification types. Every feature that notifies funnels through one of
// these.
const (
	NotificationFollow       = "follow"
	NotificationPostLike     = "post_like"
	NotificationPostComment  = "post_comment"
	NotificationCommentLike  = "comment_like"
	NotificationCommentReply = "comment_reply"
	NotificationMessage      = "message"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     string    `json:"actor_id" gorm:"type:uuid;index"`
	RecipientID string    `json:"recipient_id" gorm:"type:uuid;index"`
	PostID      *string   `json:"post_id,omitempty"`
	CommentID   *string   `json:"comment_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
