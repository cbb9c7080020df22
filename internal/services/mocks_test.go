package services

import (
	"context"
	"time"

	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// --- repository mocks ---

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) CreateMessage(message *models.Message) error {
	return m.Called(message).Error(0)
}
func (m *mockMessageRepo) GetMessageByID(id string) (*models.Message, error) {
	args := m.Called(id)
	if msg, _ := args.Get(0).(*models.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) SaveMessage(message *models.Message) error {
	return m.Called(message).Error(0)
}
func (m *mockMessageRepo) GetByConversationID(conversationID string) ([]models.Message, error) {
	args := m.Called(conversationID)
	return args.Get(0).([]models.Message), args.Error(1)
}
func (m *mockMessageRepo) GetUserMessages(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Message), args.Error(1)
}
func (m *mockMessageRepo) MarkConversationRead(conversationID, receiverID string) error {
	return m.Called(conversationID, receiverID).Error(0)
}
func (m *mockMessageRepo) CountUnreadInConversation(conversationID, receiverID string) (int64, error) {
	args := m.Called(conversationID, receiverID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockMessageRepo) CountUnread(receiverID string) (int64, error) {
	args := m.Called(receiverID)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) CreateNotification(notification *models.Notification) error {
	return m.Called(notification).Error(0)
}
func (m *mockNotificationRepo) FindRecent(typ, recipientID, actorID string, postID, commentID *string, since time.Time) (*models.Notification, error) {
	args := m.Called(typ, recipientID, actorID, postID, commentID, since)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationRepo) GetByRecipientID(recipientID string, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(recipientID, page, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *mockNotificationRepo) GetByIDForRecipient(id, recipientID string) (*models.Notification, error) {
	args := m.Called(id, recipientID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationRepo) SaveNotification(notification *models.Notification) error {
	return m.Called(notification).Error(0)
}
func (m *mockNotificationRepo) GetUnreadCount(recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockNotificationRepo) MarkAllAsRead(recipientID string) error {
	return m.Called(recipientID).Error(0)
}
func (m *mockNotificationRepo) DeleteForRecipient(id, recipientID string) (bool, error) {
	args := m.Called(id, recipientID)
	return args.Bool(0), args.Error(1)
}

// --- collaborator mocks ---

type mockUserDirectory struct{ mock.Mock }

func (m *mockUserDirectory) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u, _ := args.Get(0).(*models.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAssetStore struct{ mock.Mock }

func (m *mockAssetStore) DeleteByPath(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type mockPushSender struct{ mock.Mock }

func (m *mockPushSender) Send(ctx context.Context, token, title, body string) error {
	return m.Called(ctx, token, title, body).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Follow(ctx context.Context, actorID, recipientID string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifier) PostLike(ctx context.Context, actorID, recipientID, postID string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID, postID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifier) PostComment(ctx context.Context, actorID, recipientID, postID, commentID string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID, postID, commentID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifier) CommentLike(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID, commentID, postID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifier) CommentReply(ctx context.Context, actorID, recipientID, commentID string, postID *string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID, commentID, postID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifier) Message(ctx context.Context, actorID, recipientID string) (*models.Notification, error) {
	args := m.Called(ctx, actorID, recipientID)
	if n, _ := args.Get(0).(*models.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
