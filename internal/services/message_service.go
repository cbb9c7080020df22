package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/internal/repositories"
	"gorm.io/gorm"
)

// EditWindow is how long after sending a message its sender may still edit
// it. The boundary is inclusive: an edit at exactly ten minutes succeeds.
const EditWindow = 10 * time.Minute

// MessageService orchestrates the message store, the notification funnel,
// and the external collaborators for the direct-messaging lifecycle.
type MessageService struct {
	messages repositories.MessageRepository
	users    UserDirectory
	notifier Notifier
	assets   AssetStore
	now      func() time.Time
}

// NewMessageService creates a MessageService
func NewMessageService(messages repositories.MessageRepository, users UserDirectory, notifier Notifier, assets AssetStore) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		notifier: notifier,
		assets:   assets,
		now:      time.Now,
	}
}

// Send validates and persists a new message, then notifies the receiver.
// The notification is best-effort: its failure never rolls back the message.
func (s *MessageService) Send(ctx context.Context, senderID string, req models.CreateMessageRequest) (*models.Message, error) {
	if _, err := s.users.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: receiver not found", ErrNotFound)
		}
		return nil, err
	}

	if senderID == req.ReceiverID {
		return nil, fmt.Errorf("%w: cannot message self", ErrRejected)
	}

	kind := req.Kind
	if kind == "" {
		kind = models.MessageKindText
	}

	if models.IsMediaKind(kind) && req.FileSize != nil && *req.FileSize > models.MaxAttachmentBytes {
		return nil, fmt.Errorf("%w: file too large", ErrRejected)
	}

	now := s.now()
	message := &models.Message{
		ID:             uuid.NewString(),
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		ConversationID: ConversationID(senderID, req.ReceiverID),
		Content:        req.Content,
		Kind:           kind,
		IsRead:         false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if kind == models.MessageKindPostShare {
		message.SharedPostID = req.SharedPostID
	}
	if models.IsMediaKind(kind) {
		message.FileURL = req.FileURL
		message.FileType = req.FileType
		message.FileSize = req.FileSize
	}

	if err := s.messages.CreateMessage(message); err != nil {
		return nil, err
	}

	if _, err := s.notifier.Message(ctx, senderID, req.ReceiverID); err != nil {
		log.Printf("message notification failed for %s: %v", message.ID, err)
	}

	return message, nil
}

// ListConversations groups the user's messages by conversation and returns
// one summary per conversation, most recently active first. Conversations
// whose other participant no longer resolves are dropped.
func (s *MessageService) ListConversations(userID string) ([]models.ConversationSummary, error) {
	messages, err := s.messages.GetUserMessages(userID)
	if err != nil {
		return nil, err
	}

	// messages arrive newest first, so the first one seen per conversation
	// is its latest
	latest := make(map[string]models.Message)
	var order []string
	for _, m := range messages {
		if _, seen := latest[m.ConversationID]; !seen {
			latest[m.ConversationID] = m
			order = append(order, m.ConversationID)
		}
	}

	summaries := make([]models.ConversationSummary, 0, len(order))
	for _, convID := range order {
		lastMessage := latest[convID]

		otherID := lastMessage.SenderID
		if otherID == userID {
			otherID = lastMessage.ReceiverID
		}

		otherUser, err := s.users.GetUserByID(otherID)
		if err != nil {
			continue
		}

		unread, err := s.messages.CountUnreadInConversation(convID, userID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, models.ConversationSummary{
			ConversationID: convID,
			OtherUser:      otherUser.ToCompact(),
			LastMessage:    lastMessage,
			UnreadCount:    unread,
			UpdatedAt:      lastMessage.CreatedAt,
		})
	}

	// conversationID breaks timestamp ties so the order is deterministic
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].ConversationID < summaries[j].ConversationID
		}
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	return summaries, nil
}

// GetThread returns the full conversation with otherUserID, oldest first,
// and flips every unread message addressed to userID to read as part of
// serving it. This read-with-side-effect is deliberate: opening a thread is
// what consumes its unread count.
func (s *MessageService) GetThread(userID, otherUserID string) (*models.Thread, error) {
	otherUser, err := s.users.GetUserByID(otherUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	conversationID := ConversationID(userID, otherUserID)
	messages, err := s.messages.GetByConversationID(conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.markThreadRead(conversationID, userID, messages); err != nil {
		return nil, err
	}

	senders := map[string]models.UserCompact{otherUserID: otherUser.ToCompact()}
	thread := &models.Thread{
		OtherUser: otherUser.ToCompact(),
		Messages:  make([]models.ThreadMessage, 0, len(messages)),
	}
	for _, m := range messages {
		sender, ok := senders[m.SenderID]
		if !ok {
			if u, err := s.users.GetUserByID(m.SenderID); err == nil {
				sender = u.ToCompact()
			} else {
				sender = models.UserCompact{ID: m.SenderID}
			}
			senders[m.SenderID] = sender
		}
		thread.Messages = append(thread.Messages, models.ThreadMessage{Message: m, Sender: sender})
	}

	return thread, nil
}

// markThreadRead is the explicit read-receipt step: one batched UPDATE, then
// the in-memory copies are flipped to match.
func (s *MessageService) markThreadRead(conversationID, userID string, messages []models.Message) error {
	anyUnread := false
	for _, m := range messages {
		if m.ReceiverID == userID && !m.IsRead {
			anyUnread = true
			break
		}
	}
	if !anyUnread {
		return nil
	}

	if err := s.messages.MarkConversationRead(conversationID, userID); err != nil {
		return err
	}
	for i := range messages {
		if messages[i].ReceiverID == userID {
			messages[i].IsRead = true
		}
	}
	return nil
}

// MarkAsRead flips one message to read. Only its receiver may do so, and the
// transition is one-way: marking an already-read message is a no-op.
func (s *MessageService) MarkAsRead(messageID, userID string) (*models.Message, error) {
	message, err := s.getMessage(messageID)
	if err != nil {
		return nil, err
	}

	if message.ReceiverID != userID {
		return nil, fmt.Errorf("%w: cannot mark this message as read", ErrForbidden)
	}

	if message.IsRead {
		return message, nil
	}

	message.IsRead = true
	if err := s.messages.SaveMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Edit replaces the message content. Only the sender may edit, only while
// the message is not deleted, and only within the edit window.
func (s *MessageService) Edit(messageID, userID, content string) (*models.Message, error) {
	message, err := s.getMessage(messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != userID {
		return nil, fmt.Errorf("%w: only the sender may edit a message", ErrForbidden)
	}
	if message.IsDeleted {
		return nil, fmt.Errorf("%w: cannot edit deleted message", ErrForbidden)
	}

	now := s.now()
	if now.Sub(message.CreatedAt) > EditWindow {
		return nil, fmt.Errorf("%w: edit window expired", ErrForbidden)
	}

	message.Content = content
	message.IsEdited = true
	message.EditedAt = &now
	message.UpdatedAt = now

	if err := s.messages.SaveMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Delete tombstones the message: content becomes a fixed placeholder, the
// kind resets to text, and attachment fields are cleared. The row survives
// for thread continuity and the transition is irreversible. Attached media
// is removed from the asset store first, best-effort.
func (s *MessageService) Delete(ctx context.Context, messageID, userID string) (*models.Message, error) {
	message, err := s.getMessage(messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != userID {
		return nil, fmt.Errorf("%w: only the sender may delete a message", ErrForbidden)
	}

	if models.IsMediaKind(message.Kind) && message.FileURL != nil && s.assets != nil {
		if err := s.assets.DeleteByPath(ctx, *message.FileURL); err != nil {
			log.Printf("asset cleanup failed for message %s: %v", message.ID, err)
		}
	}

	message.IsDeleted = true
	message.Content = models.DeletedMessagePlaceholder
	message.Kind = models.MessageKindText
	message.SharedPostID = nil
	message.FileURL = nil
	message.FileType = nil
	message.FileSize = nil
	message.UpdatedAt = s.now()

	if err := s.messages.SaveMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// UnreadCount counts the user's unread, non-deleted messages across all
// conversations
func (s *MessageService) UnreadCount(userID string) (int64, error) {
	return s.messages.CountUnread(userID)
}

func (s *MessageService) getMessage(messageID string) (*models.Message, error) {
	message, err := s.messages.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message not found", ErrNotFound)
		}
		return nil, err
	}
	return message, nil
}
