package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var notifyNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newNotificationService(repo *mockNotificationRepo, users *mockUserDirectory, push PushSender) *NotificationService {
	s := NewNotificationService(repo, users, push)
	s.now = func() time.Time { return notifyNow }
	return s
}

func ptr(s string) *string { return &s }

func matchPtr(want string) interface{} {
	return mock.MatchedBy(func(p *string) bool { return p != nil && *p == want })
}

var nilSubject = mock.MatchedBy(func(p *string) bool { return p == nil })

func TestNotify_SelfActionIsSilentNoOp(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	ctx := context.Background()

	for _, call := range []func() (*models.Notification, error){
		func() (*models.Notification, error) { return svc.Follow(ctx, "u1", "u1") },
		func() (*models.Notification, error) { return svc.PostLike(ctx, "u1", "u1", "p1") },
		func() (*models.Notification, error) { return svc.PostComment(ctx, "u1", "u1", "p1", "c1") },
		func() (*models.Notification, error) { return svc.CommentLike(ctx, "u1", "u1", "c1", nil) },
		func() (*models.Notification, error) { return svc.CommentReply(ctx, "u1", "u1", "c1", nil) },
		func() (*models.Notification, error) { return svc.Message(ctx, "u1", "u1") },
	} {
		n, err := call()
		require.NoError(t, err)
		assert.Nil(t, n)
	}

	// no store interaction at all
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "CreateNotification", mock.Anything)
	repo.AssertNotCalled(t, "FindRecent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotify_CreatesUnreadRow(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", models.NotificationFollow, "bob", "alice", nilSubject, nilSubject, notifyNow.Add(-DedupWindow)).
		Return(nil, nil)
	repo.On("CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationFollow &&
			n.RecipientID == "bob" && n.ActorID == "alice" &&
			!n.IsRead && n.CreatedAt.Equal(notifyNow) && n.ID != ""
	})).Return(nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.Follow(context.Background(), "alice", "bob")

	require.NoError(t, err)
	require.NotNil(t, n)
	assert.False(t, n.IsRead)
	repo.AssertExpectations(t)
}

func TestNotify_DedupWithinWindowReturnsExistingRow(t *testing.T) {
	existing := &models.Notification{
		ID:          "n1",
		Type:        models.NotificationMessage,
		ActorID:     "alice",
		RecipientID: "bob",
		IsRead:      true,
		CreatedAt:   notifyNow.Add(-30 * time.Second),
	}
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", models.NotificationMessage, "bob", "alice", nilSubject, nilSubject, mock.Anything).
		Return(existing, nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.Message(context.Background(), "alice", "bob")

	require.NoError(t, err)
	assert.Same(t, existing, n)
	// idempotent: no new row, read state untouched
	assert.True(t, n.IsRead)
	repo.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestNotify_SubjectMatchingIsExact(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", models.NotificationPostComment, "bob", "alice", matchPtr("p1"), matchPtr("c1"), mock.Anything).
		Return(nil, nil)
	repo.On("CreateNotification", mock.Anything).Return(nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.PostComment(context.Background(), "alice", "bob", "p1", "c1")

	require.NoError(t, err)
	require.NotNil(t, n)
	require.NotNil(t, n.PostID)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, "p1", *n.PostID)
	assert.Equal(t, "c1", *n.CommentID)
	repo.AssertExpectations(t)
}

func TestNotify_CommentLikeWithoutPostSubject(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", models.NotificationCommentLike, "bob", "alice", nilSubject, matchPtr("c1"), mock.Anything).
		Return(nil, nil)
	repo.On("CreateNotification", mock.Anything).Return(nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.CommentLike(context.Background(), "alice", "bob", "c1", nil)

	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Nil(t, n.PostID)
	repo.AssertExpectations(t)
}

func TestNotify_PushFailureDoesNotFailNotify(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)
	repo.On("CreateNotification", mock.Anything).Return(nil)

	users := &mockUserDirectory{}
	users.On("GetUserByID", "bob").Return(&models.User{ID: "bob", FCMToken: "tok-1"}, nil)
	users.On("GetUserByID", "alice").Return(&models.User{ID: "alice", DisplayName: "Alice"}, nil)

	push := &mockPushSender{}
	push.On("Send", mock.Anything, "tok-1", mock.Anything, "Alice started following you").
		Return(errors.New("fcm unavailable"))

	svc := newNotificationService(repo, users, push)
	n, err := svc.Follow(context.Background(), "alice", "bob")

	require.NoError(t, err)
	require.NotNil(t, n)
	push.AssertExpectations(t)
}

func TestNotify_NoPushWithoutDeviceToken(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("FindRecent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)
	repo.On("CreateNotification", mock.Anything).Return(nil)

	users := &mockUserDirectory{}
	users.On("GetUserByID", "bob").Return(&models.User{ID: "bob"}, nil)

	push := &mockPushSender{}

	svc := newNotificationService(repo, users, push)
	_, err := svc.Follow(context.Background(), "alice", "bob")

	require.NoError(t, err)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead_NotFoundForForeignRecipient(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("GetByIDForRecipient", "n1", "mallory").Return(nil, gorm.ErrRecordNotFound)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	_, err := svc.MarkRead("n1", "mallory")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMarkRead_Flips(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("GetByIDForRecipient", "n1", "bob").Return(&models.Notification{ID: "n1", RecipientID: "bob"}, nil)
	repo.On("SaveNotification", mock.MatchedBy(func(n *models.Notification) bool { return n.IsRead })).Return(nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.MarkRead("n1", "bob")

	require.NoError(t, err)
	assert.True(t, n.IsRead)
	repo.AssertExpectations(t)
}

func TestMarkRead_AlreadyReadIsNoOp(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("GetByIDForRecipient", "n1", "bob").Return(&models.Notification{ID: "n1", RecipientID: "bob", IsRead: true}, nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	n, err := svc.MarkRead("n1", "bob")

	require.NoError(t, err)
	assert.True(t, n.IsRead)
	repo.AssertNotCalled(t, "SaveNotification", mock.Anything)
}

func TestDelete_NotOwnedReportsNotFound(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("DeleteForRecipient", "n1", "mallory").Return(false, nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	err := svc.Delete("n1", "mallory")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDelete_Owned(t *testing.T) {
	repo := &mockNotificationRepo{}
	repo.On("DeleteForRecipient", "n1", "bob").Return(true, nil)

	svc := newNotificationService(repo, &mockUserDirectory{}, nil)
	require.NoError(t, svc.Delete("n1", "bob"))
}
