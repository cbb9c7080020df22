package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/looplinehq/loopline/backend/internal/models"
	"github.com/looplinehq/loopline/backend/pkg/assets"
)

// UploadHandler accepts media uploads and stores them in the asset store
type UploadHandler struct {
	assetStore *assets.Store
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(assetStore *assets.Store) *UploadHandler {
	return &UploadHandler{assetStore: assetStore}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

// Upload stores a multipart file and returns its relative path
func (h *UploadHandler) Upload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > models.MaxAttachmentBytes {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	key := "uploads/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	path, err := h.assetStore.Upload(c.Request().Context(), key, file, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": echo.Map{
			"path":      path,
			"mime_type": contentType,
			"byte_size": fileHeader.Size,
		},
	})
}
