package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// DedupWindow is the trailing interval during which semantically identical
// notification triggers collapse into the stored row. Long enough to absorb
// UI double-submits, short enough that a genuine re-like after an unlike
// still notifies.
const DedupWindow = 60 * time.Second

// Notifier is the capability interface feature services call after their own
// write commits. Every notification in the system passes through it, which is
// why dedup lives here and nowhere else.
type Notifier interface {
	Follow(ctx context.Context, actorID, recipientID string) (*models.Notification, error)
	PostLike(ctx context.Context, actorID, recipientID, postID string) (*models.Notification, error)
	PostComment(ctx context.Context, actorID, recipientID, postID, commentID string) (*models.Notification, error)
	CommentLike(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error)
	CommentReply(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error)
	Message(ctx context.Context, actorID, recipientID string) (*models.Notification, error)
}

// NotificationRequest is the dedup tuple plus recipient/actor identity.
type NotificationRequest struct {
	Type        string
	RecipientID string
	ActorID     string
	PostID      *string
	CommentID   *string
}

// NotificationService generates, deduplicates, and serves notifications.
type NotificationService struct {
	repo  repositories.NotificationRepository
	users UserDirectory
	push  PushSender
	now   func() time.Time
}

// NewNotificationService creates a NotificationService. push may be nil when
// no delivery channel is configured.
func NewNotificationService(repo repositories.NotificationRepository, users UserDirectory, push PushSender) *NotificationService {
	return &NotificationService{
		repo:  repo,
		users: users,
		push:  push,
		now:   time.Now,
	}
}

// Notify records a notification unless the actor is the recipient (silent
// no-op) or an identical one was recorded within the dedup window (the
// existing row is returned unchanged). The window check is read-then-write:
// concurrent duplicate triggers can still race through, which is an accepted
// relaxation rather than a strict exactly-once guarantee.
func (s *NotificationService) Notify(ctx context.Context, req NotificationRequest) (*models.Notification, error) {
	if req.RecipientID == req.ActorID {
		return nil, nil
	}

	since := s.now().Add(-DedupWindow)
	existing, err := s.repo.FindRecent(req.Type, req.RecipientID, req.ActorID, req.PostID, req.CommentID, since)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	notification := &models.Notification{
		ID:          uuid.NewString(),
		Type:        req.Type,
		ActorID:     req.ActorID,
		RecipientID: req.RecipientID,
		PostID:      req.PostID,
		CommentID:   req.CommentID,
		IsRead:      false,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateNotification(notification); err != nil {
		return nil, err
	}

	s.deliverPush(ctx, notification)

	return notification, nil
}

// deliverPush sends the notification to the recipient's device, if any.
// Failures are logged and never propagated.
func (s *NotificationService) deliverPush(ctx context.Context, n *models.Notification) {
	if s.push == nil {
		return
	}

	recipient, err := s.users.GetUserByID(n.RecipientID)
	if err != nil || recipient.FCMToken == "" {
		return
	}

	actorName := "Someone"
	if actor, err := s.users.GetUserByID(n.ActorID); err == nil {
		actorName = actor.DisplayName
	}

	if err := s.push.Send(ctx, recipient.FCMToken, "Loopline", pushBody(n.Type, actorName)); err != nil {
		log.Printf("push delivery failed for notification %s: %v", n.ID, err)
	}
}

func pushBody(typ, actorName string) string {
	switch typ {
	case models.NotificationFollow:
		return actorName + " started following you"
	case models.NotificationPostLike:
		return actorName + " liked your post"
	case models.NotificationPostComment:
		return actorName + " commented on your post"
	case models.NotificationCommentLike:
		return actorName + " liked your comment"
	case models.NotificationCommentReply:
		return actorName + " replied to your comment"
	case models.NotificationMessage:
		return actorName + " sent you a message"
	default:
		return actorName + " interacted with you"
	}
}

// Follow notifies recipientID that actorID followed them
func (s *NotificationService) Follow(ctx context.Context, actorID, recipientID string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationFollow,
		RecipientID: recipientID,
		ActorID:     actorID,
	})
}

// PostLike notifies the post author of a like
func (s *NotificationService) PostLike(ctx context.Context, actorID, recipientID, postID string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationPostLike,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      &postID,
	})
}

// PostComment notifies the post author of a new comment
func (s *NotificationService) PostComment(ctx context.Context, actorID, recipientID, postID, commentID string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationPostComment,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      &postID,
		CommentID:   &commentID,
	})
}

// CommentLike notifies the comment author of a like
func (s *NotificationService) CommentLike(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationCommentLike,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      postID,
		CommentID:   &commentID,
	})
}

// CommentReply notifies the parent comment author of a reply
func (s *NotificationService) CommentReply(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationCommentReply,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      postID,
		CommentID:   &commentID,
	})
}

// Message notifies recipientID of a new direct message
func (s *NotificationService) Message(ctx context.Context, actorID, recipientID string) (*models.Notification, error) {
	return s.Notify(ctx, NotificationRequest{
		Type:        models.NotificationMessage,
		RecipientID: recipientID,
		ActorID:     actorID,
	})
}

// ListForRecipient returns one page of the recipient's notifications, newest
// first, with the total row count.
func (s *NotificationService) ListForRecipient(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	return s.repo.GetByRecipientID(recipientID, page, limit)
}

// UnreadCount counts the recipient's unread notifications
func (s *NotificationService) UnreadCount(recipientID string) (int64, error) {
	return s.repo.GetUnreadCount(recipientID)
}

// MarkRead flips one notification to read, scoped to its recipient.
func (s *NotificationService) MarkRead(id, recipientID string) (*models.Notification, error) {
	notification, err := s.repo.GetByIDForRecipient(id, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification not found", ErrNotFound)
		}
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}
	notification.IsRead = true
	if err := s.repo.SaveNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllRead flips all of the recipient's unread notifications to read
func (s *NotificationService) MarkAllRead(recipientID string) error {
	return s.repo.MarkAllAsRead(recipientID)
}

// Delete removes one notification. An ID the recipient does not own is
// reported as not found, never forbidden, to avoid leaking its existence.
func (s *NotificationService) Delete(id, recipientID string) error {
	deleted, err := s.repo.DeleteForRecipient(id, recipientID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	return nil
}
