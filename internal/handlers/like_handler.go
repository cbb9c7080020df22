package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/internal/repositories"
	"github.com/looplinehq/loopline/backend/internal/services"
)

// LikeHandler handles HTTP requests for post and comment likes
type LikeHandler struct {
	likeRepository        repositories.LikeRepository
	commentLikeRepository repositories.CommentLikeRepository
	commentRepository     repositories.CommentRepository
	postRepository        repositories.PostRepository
	notifier              services.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, commentLikeRepo repositories.CommentLikeRepository, commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifier services.Notifier) *LikeHandler {
	return &LikeHandler{
		likeRepository:        likeRepo,
		commentLikeRepository: commentLikeRepo,
		commentRepository:     commentRepo,
		postRepository:        postRepo,
		notifier:              notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.POST("/comments/:comment_id/likes", h.LikeComment)
	g.DELETE("/comments/:comment_id/likes", h.UnlikeComment)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(postID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Post already liked by this user")
	}

	like := &models.Like{
		PostID: postID,
		UserID: currentUserID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.IncrementLikesCount(c.Request().Context(), postID)

	// notify after the write commits, best-effort
	h.notifier.PostLike(c.Request().Context(), currentUserID, post.AuthorID, postID)

	return c.JSON(http.StatusCreated, like)
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil {
		if err.Error() == "like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.DecrementLikesCount(c.Request().Context(), postID)

	return c.NoContent(http.StatusNoContent)
}

// LikeComment handles liking a comment
func (h *LikeHandler) LikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID := c.Param("comment_id")

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	hasLiked, err := h.commentLikeRepository.HasUserLikedComment(commentID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Comment already liked by this user")
	}

	like := &models.CommentLike{
		CommentID: commentID,
		UserID:    currentUserID,
	}
	if err := h.commentLikeRepository.CreateCommentLike(like); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// notify after the write commits, best-effort
	h.notifier.CommentLike(c.Request().Context(), currentUserID, comment.UserID, commentID, &comment.PostID)

	return c.JSON(http.StatusCreated, like)
}

// UnlikeComment handles unliking a comment
func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.commentLikeRepository.DeleteCommentLike(c.Param("comment_id"), currentUserID); err != nil {
		if err.Error() == "comment like not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
