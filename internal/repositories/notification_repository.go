package repositories

import (
	"time"

	"github.com/looplinehq/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// The log is append-only apart from read-state flips and recipient-initiated
// deletes.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindRecent(typ, recipientID, actorID string, postID, commentID *string, since time.Time) (*models.Notification, error)
	GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error)
	GetByIDForRecipient(id, recipientID string) (*models.Notification, error)
	SaveNotification(notification *models.Notification) error
	GetUnreadCount(recipientID string) (int64, error)
	MarkAllAsRead(recipientID string) error
	DeleteForRecipient(id, recipientID string) (bool, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindRecent looks up a notification matching the full dedup tuple created
// after `since`. Subject matching is exact: a nil postID only matches rows
// whose post_id IS NULL, and likewise for commentID.
func (r *postgresNotificationRepository) FindRecent(typ, recipientID, actorID string, postID, commentID *string, since time.Time) (*models.Notification, error) {
	q := r.db.Where("type = ? AND recipient_id = ? AND actor_id = ? AND created_at > ?",
		typ, recipientID, actorID, since)

	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	} else {
		q = q.Where("post_id IS NULL")
	}
	if commentID != nil {
		q = q.Where("comment_id = ?", *commentID)
	} else {
		q = q.Where("comment_id IS NULL")
	}

	var notification models.Notification
	if err := q.First(&notification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetByIDForRecipient(id, recipientID string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) SaveNotification(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID string) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Update("is_read", true).Error
}

// DeleteForRecipient removes a notification scoped to its recipient. An ID
// owned by someone else deletes zero rows and reports false.
func (r *postgresNotificationRepository) DeleteForRecipient(id, recipientID string) (bool, error) {
	res := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).Delete(&models.Notification{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
