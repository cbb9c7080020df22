package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/internal/services"
)

// MessageHandler handles direct-messaging HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/conversations/:user_id", h.GetThread)
	g.GET("/messages/unread-count", h.GetUnreadCount)
	g.POST("/messages/:id/read", h.MarkAsRead)
	g.PUT("/messages/:id", h.EditMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.Send(c.Request().Context(), currentUserID, req)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": message})
}

// GetConversations lists the user's conversations, most recent first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	summaries, err := h.messageService.ListConversations(currentUserID)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"conversations": summaries}})
}

// GetThread returns the conversation with another user. Serving the thread
// marks its unread messages as read, so this GET is not idempotent.
func (h *MessageHandler) GetThread(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	thread, err := h.messageService.GetThread(currentUserID, c.Param("user_id"))
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": thread})
}

// GetUnreadCount returns the unread message count across all conversations
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.messageService.UnreadCount(currentUserID)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks a single message as read
func (h *MessageHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	message, err := h.messageService.MarkAsRead(c.Param("id"), currentUserID)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": message})
}

// EditMessage edits a message's content within the edit window
func (h *MessageHandler) EditMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.Edit(c.Param("id"), currentUserID, req.Content)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": message})
}

// DeleteMessage tombstones a message
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	message, err := h.messageService.Delete(c.Request().Context(), c.Param("id"), currentUserID)
	if err != nil {
		return domainHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": message})
}
