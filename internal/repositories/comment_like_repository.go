package repositories

import (
	"fmt"

	"github.com/looplinehq/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment-like data operations
type CommentLikeRepository interface {
	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID, userID string) error
	HasUserLikedComment(commentID, userID string) (bool, error)
}

// PostgresCommentLikeRepository implements CommentLikeRepository for PostgreSQL
type PostgresCommentLikeRepository struct {
	db *gorm.DB
}

// NewPostgresCommentLikeRepository creates a new PostgresCommentLikeRepository
func NewPostgresCommentLikeRepository(db *gorm.DB) *PostgresCommentLikeRepository {
	return &PostgresCommentLikeRepository{db: db}
}

// CreateCommentLike creates a new comment like in PostgreSQL
func (r *PostgresCommentLikeRepository) CreateCommentLike(like *models.CommentLike) error {
	return r.db.Create(like).Error
}

// DeleteCommentLike removes a comment like from PostgreSQL
func (r *PostgresCommentLikeRepository) DeleteCommentLike(commentID, userID string) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment like not found")
	}
	return nil
}

// HasUserLikedComment checks whether the user already liked the comment
func (r *PostgresCommentLikeRepository) HasUserLikedComment(commentID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
