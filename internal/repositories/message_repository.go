package repositories

import (
	"github.com/looplinehq/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message data operations.
// All methods are pure store operations; read-receipt side effects are
// orchestrated by the service layer.
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id string) (*models.Message, error)
	SaveMessage(message *models.Message) error
	GetByConversationID(conversationID string) ([]models.Message, error)
	GetUserMessages(userID string) ([]models.Message, error)
	MarkConversationRead(conversationID, receiverID string) error
	CountUnreadInConversation(conversationID, receiverID string) (int64, error)
	CountUnread(receiverID string) (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage persists a new message in PostgreSQL
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetMessageByID retrieves a message by ID from PostgreSQL
func (r *PostgresMessageRepository) GetMessageByID(id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// SaveMessage updates an existing message in PostgreSQL
func (r *PostgresMessageRepository) SaveMessage(message *models.Message) error {
	return r.db.Save(message).Error
}

// GetByConversationID retrieves all messages of a conversation, oldest first
func (r *PostgresMessageRepository) GetByConversationID(conversationID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetUserMessages retrieves every message the user sent or received,
// newest first
func (r *PostgresMessageRepository) GetUserMessages(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead flips every unread message addressed to receiverID in
// the conversation to read, in a single UPDATE. isRead is monotonic so a
// crash mid-statement cannot corrupt state.
func (r *PostgresMessageRepository) MarkConversationRead(conversationID, receiverID string) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, receiverID).
		Update("is_read", true).Error
}

// CountUnreadInConversation counts unread messages addressed to receiverID
// within one conversation
func (r *PostgresMessageRepository) CountUnreadInConversation(conversationID, receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, receiverID).
		Count(&count).Error
	return count, err
}

// CountUnread counts all unread, non-deleted messages addressed to receiverID
func (r *PostgresMessageRepository) CountUnread(receiverID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = false AND is_deleted = false", receiverID).
		Count(&count).Error
	return count, err
}
