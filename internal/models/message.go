package models

import "time"

// Message kinds. Media kinds carry attachment metadata; post shares carry
// the shared post ID.
const (
	MessageKindText      = "text"
	MessageKindPostShare = "post"
	MessageKindImage     = "image"
	MessageKindVideo     = "video"
	MessageKindAudio     = "audio"
)

// DeletedMessagePlaceholder is the content a message is rewritten to when
// its sender deletes it. The row is kept for thread continuity.
const DeletedMessagePlaceholder = "This message was deleted"

// MaxAttachmentBytes caps media message attachments at 15 MiB.
const MaxAttachmentBytes = 15 * 1024 * 1024

// Message represents a direct message between two users (PostgreSQL).
// ConversationID is always derived from the sender/receiver pair and is
// never settable by clients.
type Message struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey"`
	SenderID       string     `json:"sender_id" gorm:"type:uuid;index:idx_messages_participants"`
	ReceiverID     string     `json:"receiver_id" gorm:"type:uuid;index:idx_messages_participants"`
	ConversationID string     `json:"conversation_id" gorm:"index"`
	Content        string     `json:"content" gorm:"type:text"`
	Kind           string     `json:"kind" gorm:"size:10;default:'text'"`
	SharedPostID   *string    `json:"shared_post_id,omitempty"`
	FileURL        *string    `json:"file_url,omitempty"`
	FileType       *string    `json:"file_type,omitempty"`
	FileSize       *int64     `json:"file_size,omitempty"`
	IsRead         bool       `json:"is_read" gorm:"default:false;index"`
	IsDeleted      bool       `json:"is_deleted" gorm:"default:false"`
	IsEdited       bool       `json:"is_edited" gorm:"default:false"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsMediaKind reports whether the kind carries an attachment.
func IsMediaKind(kind string) bool {
	return kind == MessageKindImage || kind == MessageKindVideo || kind == MessageKindAudio
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	ReceiverID   string  `json:"receiver_id" validate:"required,uuid4"`
	Content      string  `json:"content" validate:"required,min=1"`
	Kind         string  `json:"kind,omitempty" validate:"omitempty,oneof=text post image video audio"`
	SharedPostID *string `json:"shared_post_id,omitempty"`
	FileURL      *string `json:"file_url,omitempty"`
	FileType     *string `json:"file_type,omitempty"`
	FileSize     *int64  `json:"file_size,omitempty" validate:"omitempty,min=0"`
}

// UpdateMessageRequest defines the request body for editing a message
type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// ThreadMessage is a message enriched with its sender's display identity,
// as returned by the conversation thread endpoint.
type ThreadMessage struct {
	Message
	Sender UserCompact `json:"sender"`
}

// ConversationSummary is one row of the conversation list: the other
// participant, the latest message, and how many messages are still unread.
type ConversationSummary struct {
	ConversationID string      `json:"conversation_id"`
	OtherUser      UserCompact `json:"other_user"`
	LastMessage    Message     `json:"last_message"`
	UnreadCount    int64       `json:"unread_count"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Thread is the full view of one conversation.
type Thread struct {
	OtherUser UserCompact     `json:"other_user"`
	Messages  []ThreadMessage `json:"messages"`
}
